package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/spf13/cobra"
)

func newExamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Manage exams",
	}
	cmd.AddCommand(
		newExamAddCmd(app),
		newExamListCmd(app),
		newExamWizardCmd(app),
		newExamRemoveCmd(app),
	)
	return cmd
}

func newExamAddCmd(app *App) *cobra.Command {
	var subjectArg, title, date string
	var durationMin int
	var weight float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new exam",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			subject, err := resolveSubject(ctx, app, profile.ID, subjectArg)
			if err != nil {
				return err
			}
			examDate, err := time.Parse(domain.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid exam date %q: %w", date, err)
			}
			exam := &domain.Exam{
				SubjectID:   subject.ID,
				Title:       title,
				ExamDate:    examDate,
				DurationMin: durationMin,
				WeightPct:   weight,
			}
			if err := app.Catalog.CreateExam(ctx, exam); err != nil {
				return err
			}
			fmt.Printf("Created exam %s (%s) on %s\n", exam.Title, subject.Name, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	cmd.Flags().StringVar(&title, "title", "", "Exam title")
	cmd.Flags().StringVar(&date, "date", "", "Exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&durationMin, "duration", 90, "Exam duration in minutes")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in the final grade (%)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newExamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			exams, err := app.Catalog.ListExams(ctx, profile.ID)
			if err != nil {
				return err
			}
			if len(exams) == 0 {
				fmt.Println(formatter.Dim("No exams yet. Add one with: estudia exam add"))
				return nil
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			nameOf := formatter.SubjectNames(subjects)

			rows := make([][]string, 0, len(exams))
			for _, e := range exams {
				rows = append(rows, []string{
					formatter.Bold(e.Title),
					nameOf(e.SubjectID),
					e.ExamDate.Format(domain.DateLayout),
					formatter.RelativeDateStyled(e.ExamDate),
					string(e.Status),
					formatter.Dim(shortID(e.ID)),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Title", "Subject", "Date", "When", "Status", "ID"}, rows))
			return nil
		},
	}
}

func newExamRemoveCmd(app *App) *cobra.Command {
	var subjectArg string

	cmd := &cobra.Command{
		Use:   "remove <exam>",
		Short: "Delete an exam and its topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			subject, err := resolveSubject(ctx, app, profile.ID, subjectArg)
			if err != nil {
				return err
			}
			exam, err := resolveExam(ctx, app, subject.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteExam(ctx, exam.ID); err != nil {
				return err
			}
			fmt.Printf("Removed exam %s\n", exam.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

// newExamWizardCmd walks through exam creation interactively: subject pick,
// exam details, then one topic per line.
func newExamWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Create an exam with its topics interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				return fmt.Errorf("no subjects yet; add one first with: estudia subject add")
			}

			options := make([]huh.Option[string], 0, len(subjects))
			for _, s := range subjects {
				label := s.Name
				if s.Code != "" {
					label = fmt.Sprintf("%s — %s", s.Code, s.Name)
				}
				options = append(options, huh.NewOption(label, s.ID))
			}

			var subjectID, title, date, topicsRaw string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("¿Qué asignatura?").
						Options(options...).
						Value(&subjectID),
					huh.NewInput().
						Title("Título del examen").
						Placeholder("Parcial 1").
						Value(&title),
					huh.NewInput().
						Title("Fecha (YYYY-MM-DD)").
						Validate(func(s string) error {
							_, err := time.Parse(domain.DateLayout, s)
							return err
						}).
						Value(&date),
					huh.NewText().
						Title("Temas (uno por línea)").
						Value(&topicsRaw),
				),
			).WithTheme(estudiaHuhTheme()).WithShowHelp(false)

			if err := form.Run(); err != nil {
				return err
			}

			examDate, err := time.Parse(domain.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid exam date %q: %w", date, err)
			}
			exam := &domain.Exam{SubjectID: subjectID, Title: title, ExamDate: examDate}
			if err := app.Catalog.CreateExam(ctx, exam); err != nil {
				return err
			}

			created := 0
			for _, line := range strings.Split(topicsRaw, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				topic := &domain.ExamTopic{ExamID: exam.ID, Title: line, OrderIndex: created}
				if err := app.Catalog.CreateTopic(ctx, topic); err != nil {
					return err
				}
				created++
			}
			fmt.Printf("Created exam %s with %d topics\n", exam.Title, created)
			return nil
		},
	}
}
