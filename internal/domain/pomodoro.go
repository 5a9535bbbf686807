package domain

import "time"

// PomodoroSession is a timer record of one focus or break interval.
type PomodoroSession struct {
	ID         string
	ProfileID  string
	SubjectID  string
	TopicID    string
	Phase      PomodoroPhase
	PlannedMin int
	ActualMin  int
	StartedAt  time.Time
	EndedAt    *time.Time
	Status     PomodoroStatus
	CreatedAt  time.Time
}
