package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	subjects  repository.SubjectRepo
	exams     repository.ExamRepo
	topics    repository.TopicRepo
	schedules repository.ScheduleRepo
	clock     Clock
}

func NewCatalogService(
	subjects repository.SubjectRepo,
	exams repository.ExamRepo,
	topics repository.TopicRepo,
	schedules repository.ScheduleRepo,
) CatalogService {
	return &catalogService{
		subjects:  subjects,
		exams:     exams,
		topics:    topics,
		schedules: schedules,
		clock:     UTCNow,
	}
}

func (s *catalogService) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	subject.Name = strings.TrimSpace(subject.Name)
	if subject.Name == "" {
		return fmt.Errorf("subject name cannot be empty")
	}
	if subject.ID == "" {
		subject.ID = uuid.New().String()
	}
	now := s.clock()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	return s.subjects.Create(ctx, subject)
}

func (s *catalogService) GetSubject(ctx context.Context, id string) (*domain.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

func (s *catalogService) ListSubjects(ctx context.Context, profileID string) ([]*domain.Subject, error) {
	return s.subjects.ListByProfile(ctx, profileID)
}

func (s *catalogService) UpdateSubject(ctx context.Context, subject *domain.Subject) error {
	subject.UpdatedAt = s.clock()
	return s.subjects.Update(ctx, subject)
}

func (s *catalogService) DeleteSubject(ctx context.Context, id string) error {
	return s.subjects.Delete(ctx, id)
}

func (s *catalogService) CreateExam(ctx context.Context, exam *domain.Exam) error {
	if _, err := s.subjects.GetByID(ctx, exam.SubjectID); err != nil {
		return fmt.Errorf("exam subject: %w", err)
	}
	if exam.ExamDate.IsZero() {
		return fmt.Errorf("exam date is required")
	}
	if exam.ID == "" {
		exam.ID = uuid.New().String()
	}
	if exam.Status == "" {
		exam.Status = domain.ExamUpcoming
	}
	now := s.clock()
	exam.CreatedAt = now
	exam.UpdatedAt = now
	return s.exams.Create(ctx, exam)
}

func (s *catalogService) GetExam(ctx context.Context, id string) (*domain.Exam, error) {
	return s.exams.GetByID(ctx, id)
}

func (s *catalogService) ListExams(ctx context.Context, profileID string) ([]*domain.Exam, error) {
	return s.exams.ListByProfile(ctx, profileID)
}

func (s *catalogService) ListExamsBySubject(ctx context.Context, subjectID string) ([]*domain.Exam, error) {
	return s.exams.ListBySubject(ctx, subjectID)
}

func (s *catalogService) UpdateExam(ctx context.Context, exam *domain.Exam) error {
	exam.UpdatedAt = s.clock()
	return s.exams.Update(ctx, exam)
}

func (s *catalogService) DeleteExam(ctx context.Context, id string) error {
	return s.exams.Delete(ctx, id)
}

func (s *catalogService) CreateTopic(ctx context.Context, topic *domain.ExamTopic) error {
	if _, err := s.exams.GetByID(ctx, topic.ExamID); err != nil {
		return fmt.Errorf("topic exam: %w", err)
	}
	topic.Title = strings.TrimSpace(topic.Title)
	if topic.Title == "" {
		return fmt.Errorf("topic title cannot be empty")
	}
	if topic.ID == "" {
		topic.ID = uuid.New().String()
	}
	if topic.Status == "" {
		topic.Status = domain.TopicNotStarted
	}
	now := s.clock()
	topic.CreatedAt = now
	topic.UpdatedAt = now
	return s.topics.Create(ctx, topic)
}

func (s *catalogService) GetTopic(ctx context.Context, id string) (*domain.ExamTopic, error) {
	return s.topics.GetByID(ctx, id)
}

func (s *catalogService) ListTopics(ctx context.Context, examID string) ([]*domain.ExamTopic, error) {
	return s.topics.ListByExam(ctx, examID)
}

func (s *catalogService) UpdateTopic(ctx context.Context, topic *domain.ExamTopic) error {
	topic.UpdatedAt = s.clock()
	return s.topics.Update(ctx, topic)
}

func (s *catalogService) DeleteTopic(ctx context.Context, id string) error {
	return s.topics.Delete(ctx, id)
}

func (s *catalogService) CreateSchedule(ctx context.Context, sched *domain.ClassSchedule) error {
	if _, err := s.subjects.GetByID(ctx, sched.SubjectID); err != nil {
		return fmt.Errorf("schedule subject: %w", err)
	}
	if sched.DayOfWeek < 0 || sched.DayOfWeek > 6 {
		return fmt.Errorf("day of week %d out of range (0=Sunday..6=Saturday)", sched.DayOfWeek)
	}
	start, err := domain.ParseClock(sched.StartTime)
	if err != nil {
		return err
	}
	end, err := domain.ParseClock(sched.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("schedule must end after it starts (%s..%s)", sched.StartTime, sched.EndTime)
	}
	if sched.ID == "" {
		sched.ID = uuid.New().String()
	}
	sched.CreatedAt = s.clock()
	return s.schedules.Create(ctx, sched)
}

func (s *catalogService) ListSchedules(ctx context.Context, profileID string) ([]*domain.ClassSchedule, error) {
	return s.schedules.ListByProfile(ctx, profileID)
}

func (s *catalogService) DeleteSchedule(ctx context.Context, id string) error {
	return s.schedules.Delete(ctx, id)
}
