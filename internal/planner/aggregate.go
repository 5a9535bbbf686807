package planner

import (
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
)

// DaySessions pairs one calendar date with its planned sessions.
type DaySessions struct {
	Date     string
	Sessions []domain.StudySession
}

// GroupByDate buckets plan sessions by calendar date, preserving the plan's
// own order inside each bucket (plans are already date/time sorted).
func GroupByDate(plan *domain.StudyPlan) map[string][]domain.StudySession {
	grouped := make(map[string][]domain.StudySession)
	if plan == nil {
		return grouped
	}
	for _, s := range plan.Sessions {
		grouped[s.ScheduledDate] = append(grouped[s.ScheduledDate], s)
	}
	return grouped
}

// SessionsForDate returns the sessions planned for one date, empty when the
// date has none.
func SessionsForDate(plan *domain.StudyPlan, date string) []domain.StudySession {
	if plan == nil {
		return nil
	}
	var out []domain.StudySession
	for _, s := range plan.Sessions {
		if s.ScheduledDate == date {
			out = append(out, s)
		}
	}
	return out
}

// DayWindow returns one entry per calendar day in [start, start+days),
// including days with no sessions, for calendar rendering.
func DayWindow(plan *domain.StudyPlan, start time.Time, days int) []DaySessions {
	grouped := GroupByDate(plan)
	window := make([]DaySessions, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(domain.DateLayout)
		window = append(window, DaySessions{
			Date:     date,
			Sessions: grouped[date],
		})
	}
	return window
}

// Totals recomputes total hours and per-subject coverage from a session
// list. Both generation paths share this accounting.
func Totals(sessions []domain.StudySession) (hours float64, coverage map[string]float64) {
	coverage = map[string]float64{}
	for _, s := range sessions {
		h := float64(s.DurationMin) / 60
		hours += h
		coverage[s.SubjectID] += h
	}
	return hours, coverage
}
