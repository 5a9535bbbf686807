package planner

import "github.com/estudia-cli/estudia/internal/domain"

// repetitionIntervals is the fixed expanding-interval table, in days.
// Positional only: recall performance does not feed back into it.
var repetitionIntervals = []int{1, 3, 7, 14, 30, 60, 120}

// IntervalForSession maps a 0-based repetition ordinal to a day offset.
// Ordinals beyond the table clamp to the last entry.
func IntervalForSession(ordinal int) int {
	if ordinal < 0 {
		ordinal = 0
	}
	if ordinal >= len(repetitionIntervals) {
		return repetitionIntervals[len(repetitionIntervals)-1]
	}
	return repetitionIntervals[ordinal]
}

// PriorityForUrgency maps days-until-exam to a priority tier. Thresholds are
// evaluated in order, first match wins; a negative value (exam already
// passed) lands on urgent, which is intentional: overdue material is
// maximally urgent.
func PriorityForUrgency(daysUntilExam int) domain.Priority {
	switch {
	case daysUntilExam <= 3:
		return domain.PriorityUrgent
	case daysUntilExam <= 7:
		return domain.PriorityHigh
	case daysUntilExam <= 14:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
