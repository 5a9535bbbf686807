package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
)

var validExamStatuses = map[string]bool{
	string(domain.ExamUpcoming):  true,
	string(domain.ExamCompleted): true,
	string(domain.ExamCancelled): true,
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Subjects) == 0 {
		errs = append(errs, fmt.Errorf("import file has no subjects"))
	}

	seen := make(map[string]bool)
	for i, sub := range schema.Subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)
		errs = append(errs, validateSubject(prefix, &sub, seen)...)
	}

	return errs
}

func validateSubject(prefix string, sub *SubjectImport, seen map[string]bool) []error {
	var errs []error

	name := strings.ToLower(strings.TrimSpace(sub.Name))
	if name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	} else if seen[name] {
		errs = append(errs, fmt.Errorf("%s.name: duplicate subject %q", prefix, sub.Name))
	} else {
		seen[name] = true
	}

	for j, exam := range sub.Exams {
		errs = append(errs, validateExam(fmt.Sprintf("%s.exams[%d]", prefix, j), &exam)...)
	}
	for j, block := range sub.Schedule {
		errs = append(errs, validateSchedule(fmt.Sprintf("%s.schedule[%d]", prefix, j), &block)...)
	}

	return errs
}

func validateExam(prefix string, exam *ExamImport) []error {
	var errs []error

	if exam.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if exam.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", prefix))
	} else if _, err := time.Parse("2006-01-02", exam.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, exam.Date))
	}
	if exam.DurationMin != nil && *exam.DurationMin <= 0 {
		errs = append(errs, fmt.Errorf("%s.duration_min must be positive", prefix))
	}
	if exam.WeightPct != nil && (*exam.WeightPct < 0 || *exam.WeightPct > 100) {
		errs = append(errs, fmt.Errorf("%s.weight_pct must be between 0 and 100", prefix))
	}
	if exam.Status != "" && !validExamStatuses[exam.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, exam.Status))
	}

	for k, topic := range exam.Topics {
		tp := fmt.Sprintf("%s.topics[%d]", prefix, k)
		if topic.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", tp))
		}
		if topic.EstimatedPomodoros != nil && *topic.EstimatedPomodoros <= 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_pomodoros must be positive", tp))
		}
	}

	return errs
}

func validateSchedule(prefix string, block *ScheduleImport) []error {
	var errs []error

	if block.DayOfWeek < 0 || block.DayOfWeek > 6 {
		errs = append(errs, fmt.Errorf("%s.day_of_week must be between 0 (Sunday) and 6 (Saturday)", prefix))
	}

	start, startErr := domain.ParseClock(block.StartTime)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start_time: %v", prefix, startErr))
	}
	end, endErr := domain.ParseClock(block.EndTime)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end_time: %v", prefix, endErr))
	}
	if startErr == nil && endErr == nil && end <= start {
		errs = append(errs, fmt.Errorf("%s: end_time %q must be after start_time %q", prefix, block.EndTime, block.StartTime))
	}

	return errs
}
