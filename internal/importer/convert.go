package importer

import (
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultExamDurationMin = 90
	defaultTopicPomodoros  = 4
)

// Bundle holds the domain objects produced from an import file,
// ready for persistence in a single transaction.
type Bundle struct {
	Subjects  []*domain.Subject
	Exams     []*domain.Exam
	Topics    []*domain.ExamTopic
	Schedules []*domain.ClassSchedule
}

// Convert transforms a validated ImportSchema into domain objects owned by
// profileID. Call ValidateImportSchema first; Convert assumes the schema
// is valid.
func Convert(schema *ImportSchema, profileID string, now time.Time) (*Bundle, error) {
	bundle := &Bundle{}

	for _, sub := range schema.Subjects {
		subject := &domain.Subject{
			ID:        uuid.New().String(),
			ProfileID: profileID,
			Name:      sub.Name,
			Code:      sub.Code,
			Color:     sub.Color,
			Professor: sub.Professor,
			Classroom: sub.Classroom,
			CreatedAt: now,
			UpdatedAt: now,
		}
		bundle.Subjects = append(bundle.Subjects, subject)

		for _, ex := range sub.Exams {
			examDate, err := time.Parse("2006-01-02", ex.Date)
			if err != nil {
				return nil, fmt.Errorf("parsing exam date %q: %w", ex.Date, err)
			}

			status := domain.ExamUpcoming
			if ex.Status != "" {
				status = domain.ExamStatus(ex.Status)
			}

			exam := &domain.Exam{
				ID:          uuid.New().String(),
				SubjectID:   subject.ID,
				Title:       ex.Title,
				ExamDate:    examDate,
				DurationMin: intFromPtr(ex.DurationMin, defaultExamDurationMin),
				WeightPct:   floatFromPtr(ex.WeightPct, 0),
				Status:      status,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			bundle.Exams = append(bundle.Exams, exam)

			for idx, tp := range ex.Topics {
				topic := &domain.ExamTopic{
					ID:                 uuid.New().String(),
					ExamID:             exam.ID,
					Title:              tp.Title,
					EstimatedPomodoros: intFromPtr(tp.EstimatedPomodoros, defaultTopicPomodoros),
					Status:             domain.TopicNotStarted,
					OrderIndex:         idx,
					CreatedAt:          now,
					UpdatedAt:          now,
				}
				bundle.Topics = append(bundle.Topics, topic)
			}
		}

		for _, block := range sub.Schedule {
			schedule := &domain.ClassSchedule{
				ID:        uuid.New().String(),
				SubjectID: subject.ID,
				DayOfWeek: block.DayOfWeek,
				StartTime: block.StartTime,
				EndTime:   block.EndTime,
				CreatedAt: now,
			}
			bundle.Schedules = append(bundle.Schedules, schedule)
		}
	}

	return bundle, nil
}

func intFromPtr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func floatFromPtr(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}
