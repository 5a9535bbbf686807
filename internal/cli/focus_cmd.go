package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/timer"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run pomodoro focus sessions",
	}
	cmd.AddCommand(
		newFocusStartCmd(app),
		newFocusLogCmd(app),
	)
	return cmd
}

func newFocusStartCmd(app *App) *cobra.Command {
	var subjectArg, topicID, phaseArg string
	var minutes int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a pomodoro countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}

			phase := domain.PomodoroPhase(phaseArg)
			switch phase {
			case domain.PhaseFocus, domain.PhaseShortBreak, domain.PhaseLongBreak:
			default:
				return fmt.Errorf("unknown phase %q (focus, short_break, long_break)", phaseArg)
			}

			cfg := timer.DefaultConfig()
			if minutes <= 0 {
				minutes = int(cfg.PhaseDuration(phase) / time.Minute)
			}

			label := ""
			subjectID := ""
			if subjectArg != "" {
				subject, err := resolveSubject(ctx, app, profile.ID, subjectArg)
				if err != nil {
					return err
				}
				subjectID = subject.ID
				label = subject.Name
			}
			if topicID != "" {
				topic, err := app.Catalog.GetTopic(ctx, topicID)
				if err != nil {
					return err
				}
				label = topic.Title
			}

			session, err := app.Focus.Start(ctx, profile.ID, subjectID, topicID, minutes, phase)
			if err != nil {
				return err
			}

			model := newFocusModel(phase, label, time.Duration(minutes)*time.Minute)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			outcome := final.(focusModel)
			if outcome.completed {
				if err := app.Focus.Complete(ctx, session.ID, minutes); err != nil {
					return err
				}
				fmt.Println(formatter.StyleGreen.Render("Sesión completada."))
				next := cfg.NextPhase(phase, completedFocusToday(ctx, app, profile.ID))
				fmt.Println(formatter.Dim("Siguiente: " + phaseTitle(next)))
				return nil
			}

			if err := app.Focus.Abandon(ctx, session.ID, outcome.ElapsedMinutes()); err != nil {
				return err
			}
			fmt.Println(formatter.Dim("Sesión abandonada."))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	cmd.Flags().StringVar(&topicID, "topic", "", "Topic ID to credit")
	cmd.Flags().StringVar(&phaseArg, "phase", "focus", "Phase: focus, short_break or long_break")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Override the phase duration")
	return cmd
}

// completedFocusToday counts today's finished focus sessions for break
// cadence.
func completedFocusToday(ctx context.Context, app *App, profileID string) int {
	sessions, err := app.Focus.RecentSessions(ctx, profileID, 1)
	if err != nil {
		return 0
	}
	count := 0
	for _, s := range sessions {
		if s.Phase == domain.PhaseFocus && s.Status == domain.PomodoroDone {
			count++
		}
	}
	return count
}

func newFocusLogCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent pomodoro sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			sessions, err := app.Focus.RecentSessions(ctx, profile.ID, days)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println(formatter.Dim("No pomodoro sessions in this window."))
				return nil
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			nameOf := formatter.SubjectNames(subjects)

			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				subjectName := ""
				if s.SubjectID != "" {
					subjectName = nameOf(s.SubjectID)
				}
				rows = append(rows, []string{
					s.StartedAt.Local().Format("2006-01-02 15:04"),
					string(s.Phase),
					subjectName,
					formatter.Duration(s.ActualMin),
					string(s.Status),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Started", "Phase", "Subject", "Time", "Status"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to show")
	return cmd
}
