package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/estudia-cli/estudia/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Profiles service.ProfileService
	Catalog  service.CatalogService
	Plans    service.PlanService
	Focus    service.FocusService
	Notes    service.NoteService
	Importer service.ImportService

	// ProfileName selects the active profile; set by the root --profile
	// flag, defaulting to $ESTUDIA_PROFILE or "default".
	ProfileName string
}

// NewRootCmd creates the top-level "estudia" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "estudia",
		Short: "Planificador de estudio con repetición espaciada",
	}

	defaultProfile := os.Getenv("ESTUDIA_PROFILE")
	if defaultProfile == "" {
		defaultProfile = "default"
	}
	root.PersistentFlags().StringVar(&app.ProfileName, "profile", defaultProfile,
		"Profile to operate on")

	root.AddCommand(
		newProfileCmd(app),
		newSubjectCmd(app),
		newExamCmd(app),
		newTopicCmd(app),
		newScheduleCmd(app),
		newPlanCmd(app),
		newFocusCmd(app),
		newNoteCmd(app),
		newImportCmd(app),
	)

	return root
}

// requireProfile resolves the active profile, creating the implicit
// "default" profile on first use.
func (app *App) requireProfile(ctx context.Context) (*domain.Profile, error) {
	p, err := app.Profiles.GetByName(ctx, app.ProfileName)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if app.ProfileName == "default" {
		return app.Profiles.Create(ctx, "default")
	}
	return nil, fmt.Errorf("profile %q does not exist (create it with: estudia profile add %s)",
		app.ProfileName, app.ProfileName)
}
