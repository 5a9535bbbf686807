package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect the study plan",
	}
	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanShowCmd(app),
		newPlanTodayCmd(app),
		newPlanWeekCmd(app),
	)
	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var noAI bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh study plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			plan, err := app.Plans.Generate(ctx, profile.ID, !noAI)
			if err != nil {
				return err
			}
			if len(plan.Sessions) == 0 {
				fmt.Println(formatter.Dim("No plannable sessions: add upcoming exams with topics first."))
				return nil
			}
			fmt.Printf("Generated %d sessions (%s total) with strategy %q\n",
				len(plan.Sessions), formatter.Hours(plan.TotalStudyHours), plan.Strategy)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the AI planner and use the local generator")
	return cmd
}

// currentPlan loads the stored plan, mapping "no plan yet" to a friendly nil.
func currentPlan(ctx context.Context, app *App, profileID string) (*domain.StudyPlan, error) {
	plan, err := app.Plans.Current(ctx, profileID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current study plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			plan, err := currentPlan(ctx, app, profile.ID)
			if err != nil {
				return err
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlan(plan, formatter.SubjectNames(subjects)))
			fmt.Println()
			return nil
		},
	}
}

func newPlanTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's study sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			plan, err := currentPlan(ctx, app, profile.ID)
			if err != nil {
				return err
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			today := time.Now().Format(domain.DateLayout)
			fmt.Println(formatter.Header("Hoy " + today))
			fmt.Print(formatter.FormatSessions(
				planner.SessionsForDate(plan, today),
				formatter.SubjectNames(subjects)))
			return nil
		},
	}
}

func newPlanWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the next seven days of the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			plan, err := currentPlan(ctx, app, profile.ID)
			if err != nil {
				return err
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWeek(plan, time.Now(), formatter.SubjectNames(subjects)))
			return nil
		},
	}
}
