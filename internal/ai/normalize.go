package ai

import (
	"fmt"
	"sort"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
	"github.com/google/uuid"
)

// planResponse is the JSON structure the planning service outputs.
type planResponse struct {
	Strategy         string           `json:"strategy"`
	TotalWeeklyHours float64          `json:"total_weekly_hours"`
	RestDays         []string         `json:"rest_days"`
	Recommendations  []recommendation `json:"recommendations"`
}

type recommendation struct {
	ExamSubject string      `json:"exam_subject"`
	ExamDate    string      `json:"exam_date"`
	Priority    string      `json:"priority"`
	Topics      []topicPlan `json:"topics"`
}

type topicPlan struct {
	Topic    string        `json:"topic"`
	TopicID  string        `json:"topic_id"`
	Sessions []sessionPlan `json:"sessions"`
}

type sessionPlan struct {
	SessionNumber   int    `json:"session_number"`
	DayOfWeek       string `json:"day_of_week"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Technique       string `json:"technique"`
	Description     string `json:"description"`
	ExpectedOutcome string `json:"expected_outcome"`
}

func validatePlanResponse(resp planResponse) error {
	if len(resp.Recommendations) == 0 {
		return fmt.Errorf("recommendations field is empty")
	}
	return nil
}

// normalizePlan converts a parsed service response into a domain StudyPlan.
// Per-item faults (unknown subject, unparsable date) skip that item with a
// diagnostic; only a plan with zero surviving sessions is an error.
//
// Numeric fields the service got wrong are defaulted (duration 25,
// session_number 1, technique pomodoro). repetition_interval and priority
// are always recomputed locally, never trusted from the payload.
func normalizePlan(in planner.PlanInput, now time.Time, resp planResponse, log planner.Logger) (*domain.StudyPlan, error) {
	if log == nil {
		log = planner.NopLogger
	}

	plan := &domain.StudyPlan{
		ProfileID:   in.ProfileID,
		GeneratedAt: now,
		Strategy:    resp.Strategy,
	}

	for _, rec := range resp.Recommendations {
		subject, ok := in.SubjectByNameOrCode(rec.ExamSubject)
		if !ok {
			log("ai plan: skipping recommendation for unknown subject %q", rec.ExamSubject)
			continue
		}

		examID, examDate := resolveExam(in, subject.ID, rec.ExamDate)

		for _, tp := range rec.Topics {
			topicID := resolveTopic(in, examID, tp)

			for _, sp := range tp.Sessions {
				date, err := time.Parse(domain.DateLayout, sp.Date)
				if err != nil {
					log("ai plan: skipping session with invalid date %q", sp.Date)
					continue
				}

				sessionNumber := domain.IntOrDefault(sp.SessionNumber, 1)
				priority := domain.PriorityMedium
				if !examDate.IsZero() {
					priority = planner.PriorityForUrgency(planner.DaysUntil(examDate, date))
				}

				plan.Sessions = append(plan.Sessions, domain.StudySession{
					ID:                 uuid.New().String(),
					SubjectID:          subject.ID,
					ExamID:             examID,
					TopicID:            topicID,
					ScheduledDate:      sp.Date,
					ScheduledTime:      domain.CoalesceStr(sp.Time, "08:00"),
					DurationMin:        domain.IntOrDefault(sp.DurationMinutes, 25),
					SessionNumber:      sessionNumber,
					RepetitionInterval: planner.IntervalForSession(sessionNumber - 1),
					Technique:          domain.TechniqueOrDefault(sp.Technique, domain.TechniquePomodoro),
					Priority:           priority,
					Status:             domain.SessionPending,
					Recommendation: domain.CoalesceStr(
						sp.Description, sp.ExpectedOutcome, "Sesión de estudio"),
				})
			}
		}
	}

	if len(plan.Sessions) == 0 {
		return nil, ErrEmptyPlan
	}

	sortPlanSessions(plan)
	plan.TotalStudyHours, plan.SubjectsCoverage = planner.Totals(plan.Sessions)
	return plan, nil
}

// resolveExam finds the subject's exam matching the recommendation date,
// falling back to the subject's earliest exam. An unresolved exam leaves the
// id empty; sessions are still created.
func resolveExam(in planner.PlanInput, subjectID, dateStr string) (string, time.Time) {
	recDate, parseErr := time.Parse(domain.DateLayout, dateStr)

	var earliest *domain.Exam
	for i := range in.Exams {
		e := &in.Exams[i]
		if e.SubjectID != subjectID {
			continue
		}
		if parseErr == nil && e.ExamDate.Format(domain.DateLayout) == dateStr {
			return e.ID, e.ExamDate
		}
		if earliest == nil || e.ExamDate.Before(earliest.ExamDate) {
			earliest = e
		}
	}
	if earliest != nil {
		return earliest.ID, earliest.ExamDate
	}
	if parseErr == nil {
		return "", recDate
	}
	return "", time.Time{}
}

// resolveTopic matches by provided id first, then by exact title within the
// exam. Unresolved topics are allowed; the session keeps an empty topic id.
func resolveTopic(in planner.PlanInput, examID string, tp topicPlan) string {
	if tp.TopicID != "" {
		if t, ok := in.TopicByID(tp.TopicID); ok {
			return t.ID
		}
	}
	if examID != "" {
		if t, ok := in.TopicByTitle(examID, tp.Topic); ok {
			return t.ID
		}
	}
	return ""
}

func sortPlanSessions(plan *domain.StudyPlan) {
	sort.SliceStable(plan.Sessions, func(i, j int) bool {
		return plan.Sessions[i].Before(plan.Sessions[j])
	})
}
