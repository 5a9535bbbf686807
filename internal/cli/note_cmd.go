package cli

import (
	"context"
	"fmt"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage study notes with [[wiki-style]] links",
	}
	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteShowCmd(app),
		newNoteEditCmd(app),
		newNoteRemoveCmd(app),
	)
	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var body, subjectArg string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			note := &domain.Note{
				ProfileID: profile.ID,
				Title:     args[0],
				Body:      body,
			}
			if subjectArg != "" {
				subject, err := resolveSubject(ctx, app, profile.ID, subjectArg)
				if err != nil {
					return err
				}
				note.SubjectID = subject.ID
			}
			if err := app.Notes.Create(ctx, note); err != nil {
				return err
			}
			links := domain.ExtractLinkTitles(note.Body)
			fmt.Printf("Created note %s (%d links)\n", note.Title, len(links))
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Note body; reference other notes with [[Title]]")
	cmd.Flags().StringVar(&subjectArg, "subject", "", "Attach to a subject (name, code or ID)")
	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			notes, err := app.Notes.List(ctx, profile.ID)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Println(formatter.Dim("No notes yet. Add one with: estudia note add"))
				return nil
			}
			rows := make([][]string, 0, len(notes))
			for _, n := range notes {
				rows = append(rows, []string{
					formatter.Bold(n.Title),
					n.UpdatedAt.Format("2006-01-02 15:04"),
					formatter.Dim(shortID(n.ID)),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"Title", "Updated", "ID"}, rows))
			return nil
		},
	}
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Show a note with its links and backlinks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			note, err := app.Notes.GetByTitle(ctx, profile.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.RenderBox(note.Title, note.Body))

			links, err := app.Notes.Links(ctx, note.ID)
			if err != nil {
				return err
			}
			if len(links) > 0 {
				fmt.Println(formatter.Header("Enlaces"))
				for _, l := range links {
					marker := formatter.StyleGreen.Render("→")
					if l.TargetNoteID == "" {
						marker = formatter.StyleRed.Render("→ (sin nota)")
					}
					fmt.Printf("  %s %s\n", marker, l.TargetTitle)
				}
			}

			backlinks, err := app.Notes.Backlinks(ctx, profile.ID, note.Title)
			if err != nil {
				return err
			}
			if len(backlinks) > 0 {
				fmt.Println(formatter.Header("Referenciada por"))
				for _, b := range backlinks {
					fmt.Printf("  %s %s\n", formatter.StyleBlue.Render("←"), b.Title)
				}
			}
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "edit <title>",
		Short: "Replace a note's body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			note, err := app.Notes.GetByTitle(ctx, profile.ID, args[0])
			if err != nil {
				return err
			}
			note.Body = body
			if err := app.Notes.Update(ctx, note); err != nil {
				return err
			}
			fmt.Printf("Updated note %s\n", note.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "New note body")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			note, err := app.Notes.GetByTitle(ctx, profile.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Notes.Delete(ctx, note.ID); err != nil {
				return err
			}
			fmt.Printf("Removed note %s\n", note.Title)
			return nil
		},
	}
}
