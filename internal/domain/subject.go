package domain

import "time"

// Subject is a course the user is enrolled in. Every subject belongs to
// exactly one profile; exams and class schedules hang off it by reference.
type Subject struct {
	ID        string
	ProfileID string
	Name      string
	Color     string
	Professor string
	Classroom string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exam is a scheduled assessment for a subject. ExamDate is the scheduling
// horizon boundary: no study session for this exam's topics may be placed
// on or after the exam's calendar date.
type Exam struct {
	ID          string
	SubjectID   string
	Title       string
	ExamDate    time.Time
	DurationMin int
	WeightPct   float64
	Status      ExamStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExamTopic is the smallest schedulable unit of exam content.
// CompletedPomodoros is incremented exactly once per completed focus
// session that references the topic.
type ExamTopic struct {
	ID                 string
	ExamID             string
	Title              string
	EstimatedPomodoros int
	CompletedPomodoros int
	Status             TopicStatus
	OrderIndex         int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApplyPomodoro records one completed focus session against the topic,
// advancing its status when the estimate is reached.
func (t *ExamTopic) ApplyPomodoro(now time.Time) {
	t.CompletedPomodoros++
	switch {
	case t.EstimatedPomodoros > 0 && t.CompletedPomodoros >= t.EstimatedPomodoros:
		t.Status = TopicCompleted
	case t.Status == TopicNotStarted:
		t.Status = TopicInProgress
	}
	t.UpdatedAt = now
}
