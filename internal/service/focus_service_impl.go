package service

import (
	"context"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/google/uuid"
)

type focusService struct {
	pomodoros repository.PomodoroRepo
	uow       db.UnitOfWork
	obs       UseCaseObserver
	clock     Clock
}

func NewFocusService(pomodoros repository.PomodoroRepo, uow db.UnitOfWork, opts ...Option) FocusService {
	o := applyOptions(opts)
	return &focusService{pomodoros: pomodoros, uow: uow, obs: o.obs, clock: UTCNow}
}

func (s *focusService) Start(ctx context.Context, profileID, subjectID, topicID string, plannedMin int, phase domain.PomodoroPhase) (*domain.PomodoroSession, error) {
	if plannedMin <= 0 {
		return nil, fmt.Errorf("planned minutes must be positive, got %d", plannedMin)
	}
	if phase == "" {
		phase = domain.PhaseFocus
	}
	now := s.clock()
	session := &domain.PomodoroSession{
		ID:         uuid.New().String(),
		ProfileID:  profileID,
		SubjectID:  subjectID,
		TopicID:    topicID,
		Phase:      phase,
		PlannedMin: plannedMin,
		StartedAt:  now,
		Status:     domain.PomodoroActive,
		CreatedAt:  now,
	}
	if err := s.pomodoros.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete closes the session and credits its topic. Both writes run in one
// transaction so a failed topic update never leaves a completed session
// without its progress credit.
func (s *focusService) Complete(ctx context.Context, sessionID string, actualMin int) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.obs, "focus.complete",
			map[string]any{"session_id": sessionID, "actual_min": actualMin}, started, err)
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPomodoros := repository.NewSQLitePomodoroRepo(tx)
		txTopics := repository.NewSQLiteTopicRepo(tx)

		session, err := txPomodoros.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.Status != domain.PomodoroActive {
			return fmt.Errorf("pomodoro session is already %s", session.Status)
		}

		now := s.clock()
		session.Status = domain.PomodoroDone
		session.ActualMin = actualMin
		session.EndedAt = &now
		if err := txPomodoros.Update(ctx, session); err != nil {
			return err
		}

		// Breaks and untargeted focus sessions carry no topic credit.
		if session.Phase != domain.PhaseFocus || session.TopicID == "" {
			return nil
		}

		topic, err := txTopics.GetByID(ctx, session.TopicID)
		if err != nil {
			return err
		}
		topic.ApplyPomodoro(now)
		return txTopics.Update(ctx, topic)
	})
}

func (s *focusService) Abandon(ctx context.Context, sessionID string, actualMin int) error {
	session, err := s.pomodoros.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.PomodoroActive {
		return fmt.Errorf("pomodoro session is already %s", session.Status)
	}
	now := s.clock()
	session.Status = domain.PomodoroAbandoned
	session.ActualMin = actualMin
	session.EndedAt = &now
	return s.pomodoros.Update(ctx, session)
}

func (s *focusService) RecentSessions(ctx context.Context, profileID string, days int) ([]*domain.PomodoroSession, error) {
	return s.pomodoros.ListRecent(ctx, profileID, days)
}
