package repository

import (
	"context"

	"github.com/estudia-cli/estudia/internal/domain"
)

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByName(ctx context.Context, name string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, id string) error
}

type ExamRepo interface {
	Create(ctx context.Context, e *domain.Exam) error
	GetByID(ctx context.Context, id string) (*domain.Exam, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Exam, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.Exam, error)
	Update(ctx context.Context, e *domain.Exam) error
	Delete(ctx context.Context, id string) error
}

type TopicRepo interface {
	Create(ctx context.Context, t *domain.ExamTopic) error
	GetByID(ctx context.Context, id string) (*domain.ExamTopic, error)
	ListByExam(ctx context.Context, examID string) ([]*domain.ExamTopic, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.ExamTopic, error)
	Update(ctx context.Context, t *domain.ExamTopic) error
	Delete(ctx context.Context, id string) error
}

type ScheduleRepo interface {
	Create(ctx context.Context, c *domain.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*domain.ClassSchedule, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.ClassSchedule, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.ClassSchedule, error)
	Delete(ctx context.Context, id string) error
}

// PlanRepo persists the single current plan per profile. Save replaces the
// stored plan wholesale: plans are never merged or partially updated.
type PlanRepo interface {
	Save(ctx context.Context, plan *domain.StudyPlan) error
	Get(ctx context.Context, profileID string) (*domain.StudyPlan, error)
	Delete(ctx context.Context, profileID string) error
}

type PomodoroRepo interface {
	Create(ctx context.Context, s *domain.PomodoroSession) error
	GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error)
	Update(ctx context.Context, s *domain.PomodoroSession) error
	ListRecent(ctx context.Context, profileID string, days int) ([]*domain.PomodoroSession, error)
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	GetByTitle(ctx context.Context, profileID, title string) (*domain.Note, error)
	ListByProfile(ctx context.Context, profileID string) ([]*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id string) error

	ReplaceLinks(ctx context.Context, sourceNoteID string, links []domain.NoteLink) error
	ListLinks(ctx context.Context, sourceNoteID string) ([]domain.NoteLink, error)
	ListBacklinks(ctx context.Context, profileID, title string) ([]*domain.Note, error)
}
