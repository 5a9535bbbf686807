package planner

import (
	"math"
	"sort"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/google/uuid"
)

// Logger receives diagnostic notes about skipped inputs. Generation never
// fails on a bad reference; it degrades and reports here.
type Logger func(format string, args ...any)

// NopLogger discards diagnostics.
func NopLogger(string, ...any) {}

// timeSlots is the fixed pool of start times sessions rotate through.
var timeSlots = []string{
	"08:00", "09:00", "10:00", "14:00", "15:00",
	"16:00", "17:00", "19:00", "20:00",
}

// repetitionSteps is the fixed per-topic session sequence: one long
// first-contact block, then two shorter reinforcement blocks.
var repetitionSteps = []struct {
	Technique   domain.StudyTechnique
	DurationMin int
}{
	{domain.TechniqueDeepFocus, 50},
	{domain.TechniqueActiveRecall, 30},
	{domain.TechniquePractice, 30},
}

const basicStrategy = "Plan generado con repetición espaciada: cada tema se " +
	"repasa en sesiones crecientes (1, 3 y 7 días), priorizando los exámenes " +
	"más próximos y alternando técnicas de estudio."

// GenerateBasicPlan builds a complete study plan from a snapshot without
// external calls. It never fails: unresolvable references are skipped with a
// diagnostic, empty inputs yield an empty plan.
func GenerateBasicPlan(in PlanInput, now time.Time, log Logger) *domain.StudyPlan {
	if log == nil {
		log = NopLogger
	}

	exams := make([]domain.Exam, len(in.Exams))
	copy(exams, in.Exams)
	sort.SliceStable(exams, func(i, j int) bool {
		return exams[i].ExamDate.Before(exams[j].ExamDate)
	})

	plan := &domain.StudyPlan{
		ProfileID:        in.ProfileID,
		GeneratedAt:      now,
		SubjectsCoverage: map[string]float64{},
		Strategy:         basicStrategy,
	}

	slotCursor := 0
	for _, exam := range exams {
		subject, ok := in.SubjectByID(exam.SubjectID)
		if !ok {
			log("plan: skipping exam %s: subject %s not found", exam.ID, exam.SubjectID)
			continue
		}

		daysUntil := DaysUntil(exam.ExamDate, now)
		priority := PriorityForUrgency(daysUntil)

		for topicIndex, topic := range in.TopicsForExam(exam.ID) {
			for step := range repetitionSteps {
				interval := IntervalForSession(step)
				date := now.AddDate(0, 0, topicIndex+interval)
				dateStr := date.Format(domain.DateLayout)
				// Never study a topic after its own exam.
				if dateStr >= exam.ExamDate.Format(domain.DateLayout) {
					continue
				}

				slot := pickSlot(in, date, repetitionSteps[step].DurationMin, slotCursor)
				slotCursor++

				plan.Sessions = append(plan.Sessions, domain.StudySession{
					ID:                 uuid.New().String(),
					SubjectID:          subject.ID,
					ExamID:             exam.ID,
					TopicID:            topic.ID,
					ScheduledDate:      dateStr,
					ScheduledTime:      slot,
					DurationMin:        repetitionSteps[step].DurationMin,
					SessionNumber:      step + 1,
					RepetitionInterval: interval,
					Technique:          repetitionSteps[step].Technique,
					Priority:           priority,
					Status:             domain.SessionPending,
					Recommendation:     "Repaso espaciado de " + topic.Title,
				})

				hours := float64(repetitionSteps[step].DurationMin) / 60
				plan.TotalStudyHours += hours
				plan.SubjectsCoverage[subject.ID] += hours
			}
		}
	}

	sort.SliceStable(plan.Sessions, func(i, j int) bool {
		return plan.Sessions[i].Before(plan.Sessions[j])
	})
	return plan
}

// pickSlot assigns a start time by round-robin over the slot pool, skipping
// slots whose window would intersect a class interval on that weekday. When
// every slot collides, the bare round-robin slot is used as a last resort.
func pickSlot(in PlanInput, date time.Time, durationMin, cursor int) string {
	weekday := int(date.Weekday())
	classes := in.SchedulesForWeekday(weekday)

	for offset := 0; offset < len(timeSlots); offset++ {
		slot := timeSlots[(cursor+offset)%len(timeSlots)]
		startMin, err := domain.ParseClock(slot)
		if err != nil {
			continue
		}
		free := true
		for _, c := range classes {
			if c.Overlaps(startMin, durationMin) {
				free = false
				break
			}
		}
		if free {
			return slot
		}
	}
	return timeSlots[cursor%len(timeSlots)]
}

// DaysUntil computes ceil((target - now) / 1 day). Negative when the target
// has already passed.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
