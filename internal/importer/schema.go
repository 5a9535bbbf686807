package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for catalog import.
// Exams, topics, and class schedules nest under their subject, so the
// file needs no cross-reference bookkeeping.
type ImportSchema struct {
	Subjects []SubjectImport `json:"subjects"`
}

// SubjectImport defines one subject and everything hanging off it.
type SubjectImport struct {
	Name      string           `json:"name"`
	Code      string           `json:"code,omitempty"`
	Color     string           `json:"color,omitempty"`
	Professor string           `json:"professor,omitempty"`
	Classroom string           `json:"classroom,omitempty"`
	Exams     []ExamImport     `json:"exams,omitempty"`
	Schedule  []ScheduleImport `json:"schedule,omitempty"`
}

// ExamImport defines an exam in the import file.
type ExamImport struct {
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	DurationMin *int          `json:"duration_min,omitempty"`
	WeightPct   *float64      `json:"weight_pct,omitempty"`
	Status      string        `json:"status,omitempty"`
	Topics      []TopicImport `json:"topics,omitempty"`
}

// TopicImport defines an exam topic. Topic order follows file order.
type TopicImport struct {
	Title              string `json:"title"`
	EstimatedPomodoros *int   `json:"estimated_pomodoros,omitempty"`
}

// ScheduleImport defines a recurring weekly class block.
// DayOfWeek follows time.Weekday numbering (0=Sunday..6=Saturday).
type ScheduleImport struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// LoadImportSchema reads and parses a catalog import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
