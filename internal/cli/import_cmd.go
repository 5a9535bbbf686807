package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk-load subjects, exams, topics, and schedules from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			bundle, err := app.Importer.ImportFile(ctx, profile.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d subjects, %d exams, %d topics, %d schedule blocks\n",
				len(bundle.Subjects), len(bundle.Exams), len(bundle.Topics), len(bundle.Schedules))
			return nil
		},
	}
}
