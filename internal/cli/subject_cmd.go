package cli

import (
	"context"
	"fmt"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage subjects",
	}
	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectRemoveCmd(app),
	)
	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var code, color, professor, classroom string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			subject := &domain.Subject{
				ProfileID: profile.ID,
				Name:      args[0],
				Code:      code,
				Color:     color,
				Professor: professor,
				Classroom: classroom,
			}
			if err := app.Catalog.CreateSubject(ctx, subject); err != nil {
				return err
			}
			fmt.Printf("Created subject %s [%s]\n", subject.Name, shortID(subject.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Course code (e.g. MAT101)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&professor, "professor", "", "Professor name")
	cmd.Flags().StringVar(&classroom, "classroom", "", "Classroom")
	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
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
				fmt.Println(formatter.Dim("No subjects yet. Add one with: estudia subject add"))
				return nil
			}
			rows := make([][]string, 0, len(subjects))
			for _, s := range subjects {
				rows = append(rows, []string{
					formatter.Bold(s.Name), s.Code, s.Professor, s.Classroom,
					formatter.Dim(shortID(s.ID)),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Name", "Code", "Professor", "Classroom", "ID"}, rows))
			return nil
		},
	}
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <subject>",
		Short: "Delete a subject and its exams, topics and schedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			subject, err := resolveSubject(ctx, app, profile.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteSubject(ctx, subject.ID); err != nil {
				return err
			}
			fmt.Printf("Removed subject %s\n", subject.Name)
			return nil
		},
	}
}
