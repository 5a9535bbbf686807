package cli

import (
	"context"
	"fmt"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}
	cmd.AddCommand(
		newProfileAddCmd(app),
		newProfileListCmd(app),
		newProfileRemoveCmd(app),
	)
	return cmd
}

func newProfileAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created profile %s\n", p.Name)
			return nil
		},
	}
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(context.Background())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println(formatter.Dim("No profiles yet."))
				return nil
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				name := p.Name
				if p.Name == app.ProfileName {
					name = formatter.Bold(name + " *")
				}
				rows = append(rows, []string{name, formatter.Dim(shortID(p.ID)), p.CreatedAt.Format("2006-01-02")})
			}
			fmt.Print(formatter.RenderTable([]string{"Name", "ID", "Created"}, rows))
			return nil
		},
	}
}

func newProfileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a profile and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Profiles.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Removed profile %s\n", p.Name)
			return nil
		},
	}
}
