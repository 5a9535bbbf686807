package domain

import (
	"fmt"
	"time"
)

// ClassSchedule is a recurring weekly occupied interval for a subject.
// DayOfWeek follows time.Weekday numbering (0=Sunday..6=Saturday).
// StartTime and EndTime are local wall-clock "HH:MM" strings.
type ClassSchedule struct {
	ID        string
	SubjectID string
	DayOfWeek int
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// Overlaps reports whether a session starting at startMin lasting durationMin
// minutes intersects this class interval. Malformed schedule times are
// treated as non-overlapping.
func (c ClassSchedule) Overlaps(startMin, durationMin int) bool {
	cs, err := ParseClock(c.StartTime)
	if err != nil {
		return false
	}
	ce, err := ParseClock(c.EndTime)
	if err != nil {
		return false
	}
	return startMin < ce && cs < startMin+durationMin
}
