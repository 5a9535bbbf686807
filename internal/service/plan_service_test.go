package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/estudia-cli/estudia/internal/store"
	"github.com/estudia-cli/estudia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAI struct {
	err   error
	calls int
}

func (f *failingAI) RequestPlan(context.Context, planner.PlanInput, time.Time) (*domain.StudyPlan, error) {
	f.calls++
	return nil, f.err
}

type canned struct {
	plan *domain.StudyPlan
}

func (c *canned) RequestPlan(_ context.Context, in planner.PlanInput, _ time.Time) (*domain.StudyPlan, error) {
	c.plan.ProfileID = in.ProfileID
	return c.plan, nil
}

type planFixture struct {
	db      *sql.DB
	profile *domain.Profile
	subject *domain.Subject
}

// seedPlanFixture loads one subject with an exam 10 days out and two topics.
func seedPlanFixture(t *testing.T) planFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	profile := testutil.NewTestProfile("ana")
	require.NoError(t, repository.NewSQLiteProfileRepo(database).Create(ctx, profile))
	subject := testutil.NewTestSubject(profile.ID, "Cálculo I", testutil.WithCode("MAT101"))
	require.NoError(t, repository.NewSQLiteSubjectRepo(database).Create(ctx, subject))

	exam := testutil.NewTestExam(subject.ID, time.Now().UTC().AddDate(0, 0, 10))
	require.NoError(t, repository.NewSQLiteExamRepo(database).Create(ctx, exam))
	topicRepo := repository.NewSQLiteTopicRepo(database)
	require.NoError(t, topicRepo.Create(ctx, testutil.NewTestTopic(exam.ID, "Límites", testutil.WithOrderIndex(0))))
	require.NoError(t, topicRepo.Create(ctx, testutil.NewTestTopic(exam.ID, "Derivadas", testutil.WithOrderIndex(1))))

	return planFixture{db: database, profile: profile, subject: subject}
}

func newPlanService(fx planFixture, st *store.Store, ai AIPlanner) PlanService {
	return NewPlanService(
		repository.NewSQLiteSubjectRepo(fx.db),
		repository.NewSQLiteExamRepo(fx.db),
		repository.NewSQLiteTopicRepo(fx.db),
		repository.NewSQLiteScheduleRepo(fx.db),
		repository.NewSQLitePlanRepo(fx.db),
		testutil.NewTestUoW(fx.db),
		st,
		ai,
		planner.NopLogger,
	)
}

// stripVolatile clears IDs and generation timestamps so two plans generated
// from the same snapshot compare equal.
func stripVolatile(p *domain.StudyPlan) domain.StudyPlan {
	out := *p
	out.GeneratedAt = time.Time{}
	out.Sessions = append([]domain.StudySession(nil), p.Sessions...)
	for i := range out.Sessions {
		out.Sessions[i].ID = ""
	}
	return out
}

func TestPlanService_Generate_LocalPath(t *testing.T) {
	fx := seedPlanFixture(t)
	svc := newPlanService(fx, nil, nil)
	ctx := context.Background()

	plan, err := svc.Generate(ctx, fx.profile.ID, false)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.NotEmpty(t, plan.Sessions)
	assert.Equal(t, fx.profile.ID, plan.ProfileID)
	for _, s := range plan.Sessions {
		assert.Equal(t, fx.subject.ID, s.SubjectID)
	}

	// Persisted wholesale and readable back.
	stored, err := svc.Current(ctx, fx.profile.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Sessions, len(plan.Sessions))
}

func TestPlanService_Generate_AIFailureFallsBack(t *testing.T) {
	fx := seedPlanFixture(t)
	ai := &failingAI{err: errors.New("model unreachable")}
	svc := newPlanService(fx, nil, ai)
	// Pin the clock so both runs share a generation date.
	now := time.Now().UTC()
	svc.(*planService).clock = func() time.Time { return now }
	ctx := context.Background()

	withAI, err := svc.Generate(ctx, fx.profile.ID, true)
	require.NoError(t, err)
	require.NotNil(t, withAI)
	assert.Equal(t, 1, ai.calls)

	local, err := svc.Generate(ctx, fx.profile.ID, false)
	require.NoError(t, err)

	// The fallback plan is indistinguishable from a direct local run.
	assert.Equal(t, stripVolatile(local), stripVolatile(withAI))
}

func TestPlanService_Generate_AIFailureLogLine(t *testing.T) {
	fx := seedPlanFixture(t)
	ai := &failingAI{err: errors.New("model unreachable")}

	var logged []string
	log := planner.Logger(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})
	svc := NewPlanService(
		repository.NewSQLiteSubjectRepo(fx.db),
		repository.NewSQLiteExamRepo(fx.db),
		repository.NewSQLiteTopicRepo(fx.db),
		repository.NewSQLiteScheduleRepo(fx.db),
		repository.NewSQLitePlanRepo(fx.db),
		testutil.NewTestUoW(fx.db),
		nil,
		ai,
		log,
	)

	_, err := svc.Generate(context.Background(), fx.profile.ID, true)
	require.NoError(t, err)

	require.NotEmpty(t, logged)
	assert.Contains(t, logged[0], "model unreachable")
	assert.NotContains(t, logged[0], "%!", "log call must match the Printf-style logger")
}

func TestPlanService_Generate_UsesAIPlanWhenAvailable(t *testing.T) {
	fx := seedPlanFixture(t)
	ai := &canned{plan: &domain.StudyPlan{
		Strategy: "plan del modelo",
		Sessions: []domain.StudySession{
			testutil.NewTestSession(fx.subject.ID, "2026-09-05", "09:00"),
		},
	}}
	svc := newPlanService(fx, nil, ai)

	plan, err := svc.Generate(context.Background(), fx.profile.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "plan del modelo", plan.Strategy)
	require.Len(t, plan.Sessions, 1)
}

func TestPlanService_Generate_CommitsToStore(t *testing.T) {
	fx := seedPlanFixture(t)
	st := store.New(fx.profile.ID)
	svc := newPlanService(fx, st, nil)

	plan, err := svc.Generate(context.Background(), fx.profile.ID, false)
	require.NoError(t, err)

	snap := st.Snapshot()
	require.NotNil(t, snap.Plan)
	assert.Len(t, snap.Plan.Sessions, len(plan.Sessions))
	assert.Len(t, snap.Subjects, 1)
	assert.Len(t, snap.Topics, 2)
}

func TestPlanService_Generate_SkipsCompletedExams(t *testing.T) {
	fx := seedPlanFixture(t)
	ctx := context.Background()

	done := testutil.NewTestExam(fx.subject.ID, time.Now().UTC().AddDate(0, 0, 5),
		testutil.WithExamStatus(domain.ExamCompleted))
	require.NoError(t, repository.NewSQLiteExamRepo(fx.db).Create(ctx, done))
	require.NoError(t, repository.NewSQLiteTopicRepo(fx.db).Create(ctx,
		testutil.NewTestTopic(done.ID, "Tema viejo")))

	svc := newPlanService(fx, nil, nil)
	plan, err := svc.Generate(ctx, fx.profile.ID, false)
	require.NoError(t, err)
	for _, s := range plan.Sessions {
		assert.NotEqual(t, done.ID, s.ExamID)
	}
}

func TestPlanService_Generate_PersistFailureRollsBack(t *testing.T) {
	fx := seedPlanFixture(t)
	ctx := context.Background()

	// Seed an existing plan, then make the replacing save fail mid-write.
	svc := newPlanService(fx, nil, nil)
	first, err := svc.Generate(ctx, fx.profile.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, first.Sessions)

	failing := NewPlanService(
		repository.NewSQLiteSubjectRepo(fx.db),
		repository.NewSQLiteExamRepo(fx.db),
		repository.NewSQLiteTopicRepo(fx.db),
		repository.NewSQLiteScheduleRepo(fx.db),
		repository.NewSQLitePlanRepo(fx.db),
		&testutil.FailOnNthExecUoW{DB: fx.db, FailOn: 3, Err: errors.New("disk full")},
		nil, nil, planner.NopLogger,
	)
	_, err = failing.Generate(ctx, fx.profile.ID, false)
	require.Error(t, err)

	// The previous plan survives intact.
	stored, err := repository.NewSQLitePlanRepo(fx.db).Get(ctx, fx.profile.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Sessions, len(first.Sessions))
}

func TestPlanService_Clear(t *testing.T) {
	fx := seedPlanFixture(t)
	svc := newPlanService(fx, nil, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, fx.profile.ID, false)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, fx.profile.ID))

	_, err = svc.Current(ctx, fx.profile.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
