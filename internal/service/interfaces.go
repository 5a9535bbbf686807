package service

import (
	"context"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/importer"
)

type ProfileService interface {
	Create(ctx context.Context, name string) (*domain.Profile, error)
	GetByName(ctx context.Context, name string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}

type CatalogService interface {
	CreateSubject(ctx context.Context, s *domain.Subject) error
	GetSubject(ctx context.Context, id string) (*domain.Subject, error)
	ListSubjects(ctx context.Context, profileID string) ([]*domain.Subject, error)
	UpdateSubject(ctx context.Context, s *domain.Subject) error
	DeleteSubject(ctx context.Context, id string) error

	CreateExam(ctx context.Context, e *domain.Exam) error
	GetExam(ctx context.Context, id string) (*domain.Exam, error)
	ListExams(ctx context.Context, profileID string) ([]*domain.Exam, error)
	ListExamsBySubject(ctx context.Context, subjectID string) ([]*domain.Exam, error)
	UpdateExam(ctx context.Context, e *domain.Exam) error
	DeleteExam(ctx context.Context, id string) error

	CreateTopic(ctx context.Context, t *domain.ExamTopic) error
	GetTopic(ctx context.Context, id string) (*domain.ExamTopic, error)
	ListTopics(ctx context.Context, examID string) ([]*domain.ExamTopic, error)
	UpdateTopic(ctx context.Context, t *domain.ExamTopic) error
	DeleteTopic(ctx context.Context, id string) error

	CreateSchedule(ctx context.Context, c *domain.ClassSchedule) error
	ListSchedules(ctx context.Context, profileID string) ([]*domain.ClassSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// PlanService generates, persists, and serves the profile's study plan.
// Generate never returns a nil plan together with a nil error.
type PlanService interface {
	Generate(ctx context.Context, profileID string, useAI bool) (*domain.StudyPlan, error)
	Current(ctx context.Context, profileID string) (*domain.StudyPlan, error)
	Clear(ctx context.Context, profileID string) error
}

type FocusService interface {
	Start(ctx context.Context, profileID, subjectID, topicID string, plannedMin int, phase domain.PomodoroPhase) (*domain.PomodoroSession, error)
	Complete(ctx context.Context, sessionID string, actualMin int) error
	Abandon(ctx context.Context, sessionID string, actualMin int) error
	RecentSessions(ctx context.Context, profileID string, days int) ([]*domain.PomodoroSession, error)
}

// NoteService persists notes and keeps their [[Title]] link graph current.
type NoteService interface {
	Create(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, id string) (*domain.Note, error)
	GetByTitle(ctx context.Context, profileID, title string) (*domain.Note, error)
	List(ctx context.Context, profileID string) ([]*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id string) error
	Links(ctx context.Context, noteID string) ([]domain.NoteLink, error)
	Backlinks(ctx context.Context, profileID, title string) ([]*domain.Note, error)
}

// ImportService loads a JSON catalog file and persists its subjects,
// exams, topics, and class schedules in one transaction.
type ImportService interface {
	ImportFile(ctx context.Context, profileID, path string) (*importer.Bundle, error)
}

// Clock lets tests pin "now" while production code uses the wall clock.
type Clock func() time.Time

// UTCNow is the production clock.
func UTCNow() time.Time { return time.Now().UTC() }
