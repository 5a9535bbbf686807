package service

import (
	"context"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/estudia-cli/estudia/internal/store"
)

// AIPlanner requests a plan draft from an external model. ai.Planner
// implements it; tests substitute failing doubles.
type AIPlanner interface {
	RequestPlan(ctx context.Context, in planner.PlanInput, now time.Time) (*domain.StudyPlan, error)
}

type planService struct {
	subjects  repository.SubjectRepo
	exams     repository.ExamRepo
	topics    repository.TopicRepo
	schedules repository.ScheduleRepo
	plans     repository.PlanRepo
	uow       db.UnitOfWork
	store     *store.Store
	ai        AIPlanner
	log       planner.Logger
	obs       UseCaseObserver
	clock     Clock
}

func NewPlanService(
	subjects repository.SubjectRepo,
	exams repository.ExamRepo,
	topics repository.TopicRepo,
	schedules repository.ScheduleRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	st *store.Store,
	ai AIPlanner,
	log planner.Logger,
	opts ...Option,
) PlanService {
	if log == nil {
		log = planner.NopLogger
	}
	o := applyOptions(opts)
	return &planService{
		subjects:  subjects,
		exams:     exams,
		topics:    topics,
		schedules: schedules,
		plans:     plans,
		uow:       uow,
		store:     st,
		ai:        ai,
		log:       log,
		obs:       o.obs,
		clock:     UTCNow,
	}
}

// Generate produces a fresh plan for the profile. When useAI is set the
// external planner runs first and any failure falls back to the local
// generator, so the caller always receives a usable plan.
func (s *planService) Generate(ctx context.Context, profileID string, useAI bool) (plan *domain.StudyPlan, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.obs, "plan.generate",
			map[string]any{"profile_id": profileID, "ai_requested": useAI}, started, err)
	}()

	in, err := s.loadInput(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var epoch store.Epoch
	if s.store != nil {
		s.hydrateStore(in)
		epoch = s.store.BeginGeneration()
	}

	now := s.clock()
	if useAI && s.ai != nil {
		plan, err = s.ai.RequestPlan(ctx, in, now)
		if err != nil {
			s.log("ai planner unavailable, using local generator: %v", err)
			plan = nil
		}
	}
	if plan == nil {
		plan = planner.GenerateBasicPlan(in, now, s.log)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		s.store.CommitPlan(epoch, plan)
	}
	return plan, nil
}

func (s *planService) Current(ctx context.Context, profileID string) (*domain.StudyPlan, error) {
	return s.plans.Get(ctx, profileID)
}

func (s *planService) Clear(ctx context.Context, profileID string) error {
	return s.plans.Delete(ctx, profileID)
}

func (s *planService) loadInput(ctx context.Context, profileID string) (planner.PlanInput, error) {
	in := planner.PlanInput{ProfileID: profileID}

	subjects, err := s.subjects.ListByProfile(ctx, profileID)
	if err != nil {
		return in, err
	}
	exams, err := s.exams.ListByProfile(ctx, profileID)
	if err != nil {
		return in, err
	}
	topics, err := s.topics.ListByProfile(ctx, profileID)
	if err != nil {
		return in, err
	}
	schedules, err := s.schedules.ListByProfile(ctx, profileID)
	if err != nil {
		return in, err
	}

	for _, s := range subjects {
		in.Subjects = append(in.Subjects, *s)
	}
	for _, e := range exams {
		if e.Status == domain.ExamUpcoming {
			in.Exams = append(in.Exams, *e)
		}
	}
	for _, t := range topics {
		in.Topics = append(in.Topics, *t)
	}
	for _, c := range schedules {
		in.Schedules = append(in.Schedules, *c)
	}
	return in, nil
}

func (s *planService) hydrateStore(in planner.PlanInput) {
	s.store.ReplaceSubjects(in.Subjects)
	s.store.ReplaceExams(in.Exams)
	s.store.ReplaceTopics(in.Topics)
	s.store.ReplaceSchedules(in.Schedules)
}
