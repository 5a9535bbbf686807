package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/estudia-cli/estudia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type focusFixture struct {
	db      *sql.DB
	profile *domain.Profile
	subject *domain.Subject
	topic   *domain.ExamTopic
}

func seedFocusFixture(t *testing.T) focusFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	profile := testutil.NewTestProfile("ana")
	require.NoError(t, repository.NewSQLiteProfileRepo(database).Create(ctx, profile))
	subject := testutil.NewTestSubject(profile.ID, "Física")
	require.NoError(t, repository.NewSQLiteSubjectRepo(database).Create(ctx, subject))
	exam := testutil.NewTestExam(subject.ID, time.Now().UTC().AddDate(0, 0, 10))
	require.NoError(t, repository.NewSQLiteExamRepo(database).Create(ctx, exam))
	topic := testutil.NewTestTopic(exam.ID, "Cinemática", testutil.WithEstimatedPomodoros(2))
	require.NoError(t, repository.NewSQLiteTopicRepo(database).Create(ctx, topic))

	return focusFixture{db: database, profile: profile, subject: subject, topic: topic}
}

func TestFocusService_CompleteCreditsTopic(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))
	ctx := context.Background()

	session, err := svc.Start(ctx, fx.profile.ID, fx.subject.ID, fx.topic.ID, 25, domain.PhaseFocus)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, session.ID, 25))

	topic, err := repository.NewSQLiteTopicRepo(fx.db).GetByID(ctx, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, topic.CompletedPomodoros)
	assert.Equal(t, domain.TopicInProgress, topic.Status)

	stored, err := svc.RecentSessions(ctx, fx.profile.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.PomodoroDone, stored[0].Status)
	assert.Equal(t, 25, stored[0].ActualMin)
}

func TestFocusService_CompleteReachesEstimate(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		session, err := svc.Start(ctx, fx.profile.ID, fx.subject.ID, fx.topic.ID, 25, domain.PhaseFocus)
		require.NoError(t, err)
		require.NoError(t, svc.Complete(ctx, session.ID, 25))
	}

	topic, err := repository.NewSQLiteTopicRepo(fx.db).GetByID(ctx, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, topic.CompletedPomodoros)
	assert.Equal(t, domain.TopicCompleted, topic.Status)
}

func TestFocusService_BreakDoesNotCreditTopic(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))
	ctx := context.Background()

	session, err := svc.Start(ctx, fx.profile.ID, fx.subject.ID, fx.topic.ID, 5, domain.PhaseShortBreak)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, session.ID, 5))

	topic, err := repository.NewSQLiteTopicRepo(fx.db).GetByID(ctx, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, topic.CompletedPomodoros)
	assert.Equal(t, domain.TopicNotStarted, topic.Status)
}

func TestFocusService_CompleteTwiceRejected(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))
	ctx := context.Background()

	session, err := svc.Start(ctx, fx.profile.ID, "", "", 25, domain.PhaseFocus)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, session.ID, 25))

	err = svc.Complete(ctx, session.ID, 25)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")
}

func TestFocusService_Abandon(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))
	ctx := context.Background()

	session, err := svc.Start(ctx, fx.profile.ID, fx.subject.ID, fx.topic.ID, 25, domain.PhaseFocus)
	require.NoError(t, err)
	require.NoError(t, svc.Abandon(ctx, session.ID, 10))

	stored, err := repository.NewSQLitePomodoroRepo(fx.db).GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroAbandoned, stored.Status)
	assert.Equal(t, 10, stored.ActualMin)

	// No credit for abandoned sessions.
	topic, err := repository.NewSQLiteTopicRepo(fx.db).GetByID(ctx, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, topic.CompletedPomodoros)
}

func TestFocusService_CompleteRollsBackOnTopicFailure(t *testing.T) {
	fx := seedFocusFixture(t)
	pomodoros := repository.NewSQLitePomodoroRepo(fx.db)
	ctx := context.Background()

	svc := NewFocusService(pomodoros, testutil.NewTestUoW(fx.db))
	session, err := svc.Start(ctx, fx.profile.ID, fx.subject.ID, fx.topic.ID, 25, domain.PhaseFocus)
	require.NoError(t, err)

	// Exec 1 updates the session, exec 2 updates the topic. Failing the topic
	// write must also undo the session close.
	failing := NewFocusService(pomodoros, &testutil.FailOnNthExecUoW{
		DB: fx.db, FailOn: 2, Err: errors.New("disk full"),
	})
	err = failing.Complete(ctx, session.ID, 25)
	require.Error(t, err)

	stored, err := pomodoros.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroActive, stored.Status)

	topic, err := repository.NewSQLiteTopicRepo(fx.db).GetByID(ctx, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, topic.CompletedPomodoros)
}

func TestFocusService_Start_RejectsNonPositiveMinutes(t *testing.T) {
	fx := seedFocusFixture(t)
	svc := NewFocusService(repository.NewSQLitePomodoroRepo(fx.db), testutil.NewTestUoW(fx.db))

	_, err := svc.Start(context.Background(), fx.profile.ID, "", "", 0, domain.PhaseFocus)
	assert.Error(t, err)
}
