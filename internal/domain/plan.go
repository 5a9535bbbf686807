package domain

import "time"

// DateLayout is the calendar date format used across plans and schedules.
const DateLayout = "2006-01-02"

// StudySession is a planned slot within a study plan, not a timer record.
// SessionNumber is a 1-based ordinal within its topic's repetition sequence;
// RepetitionInterval is the day offset since the topic's first session.
type StudySession struct {
	ID                 string
	SubjectID          string
	ExamID             string
	TopicID            string
	ScheduledDate      string // YYYY-MM-DD
	ScheduledTime      string // HH:MM
	DurationMin        int
	SessionNumber      int
	RepetitionInterval int
	Technique          StudyTechnique
	Priority           Priority
	Status             SessionStatus
	Recommendation     string
}

// StudyPlan is the full output of one generation run. Plans are never
// mutated: a regeneration replaces the previous plan wholesale.
type StudyPlan struct {
	ProfileID        string
	GeneratedAt      time.Time
	Sessions         []StudySession
	TotalStudyHours  float64
	SubjectsCoverage map[string]float64 // subject id -> hours
	Strategy         string
}

// Before reports whether session s sorts before other in the canonical
// (scheduled_date, scheduled_time) plan order.
func (s StudySession) Before(other StudySession) bool {
	if s.ScheduledDate != other.ScheduledDate {
		return s.ScheduledDate < other.ScheduledDate
	}
	return s.ScheduledTime < other.ScheduledTime
}
