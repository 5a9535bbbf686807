package cli

import (
	"context"
	"fmt"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/spf13/cobra"
)

func newTopicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage exam topics",
	}
	cmd.AddCommand(
		newTopicAddCmd(app),
		newTopicListCmd(app),
		newTopicRemoveCmd(app),
	)
	return cmd
}

// resolveExamArgs resolves the --subject/--exam flag pair shared by topic
// subcommands.
func resolveExamArgs(ctx context.Context, app *App, subjectArg, examArg string) (*domain.Exam, error) {
	profile, err := app.requireProfile(ctx)
	if err != nil {
		return nil, err
	}
	subject, err := resolveSubject(ctx, app, profile.ID, subjectArg)
	if err != nil {
		return nil, err
	}
	return resolveExam(ctx, app, subject.ID, examArg)
}

func newTopicAddCmd(app *App) *cobra.Command {
	var subjectArg, examArg string
	var pomodoros, order int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a topic to an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			exam, err := resolveExamArgs(ctx, app, subjectArg, examArg)
			if err != nil {
				return err
			}
			topic := &domain.ExamTopic{
				ExamID:             exam.ID,
				Title:              args[0],
				EstimatedPomodoros: pomodoros,
				OrderIndex:         order,
			}
			if err := app.Catalog.CreateTopic(ctx, topic); err != nil {
				return err
			}
			fmt.Printf("Added topic %s to %s\n", topic.Title, exam.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	cmd.Flags().StringVar(&examArg, "exam", "", "Exam title or ID")
	cmd.Flags().IntVar(&pomodoros, "pomodoros", 4, "Estimated pomodoros to master the topic")
	cmd.Flags().IntVar(&order, "order", 0, "Position within the exam")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("exam")
	return cmd
}

func newTopicListCmd(app *App) *cobra.Command {
	var subjectArg, examArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an exam's topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			exam, err := resolveExamArgs(ctx, app, subjectArg, examArg)
			if err != nil {
				return err
			}
			topics, err := app.Catalog.ListTopics(ctx, exam.ID)
			if err != nil {
				return err
			}
			if len(topics) == 0 {
				fmt.Println(formatter.Dim("No topics yet. Add one with: estudia topic add"))
				return nil
			}
			rows := make([][]string, 0, len(topics))
			for _, topic := range topics {
				progress := fmt.Sprintf("%d/%d", topic.CompletedPomodoros, topic.EstimatedPomodoros)
				rows = append(rows, []string{
					formatter.Bold(topic.Title),
					progress,
					string(topic.Status),
					formatter.Dim(shortID(topic.ID)),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Title", "Pomodoros", "Status", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	cmd.Flags().StringVar(&examArg, "exam", "", "Exam title or ID")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("exam")
	return cmd
}

func newTopicRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <topic-id>",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic, err := app.Catalog.GetTopic(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteTopic(ctx, topic.ID); err != nil {
				return err
			}
			fmt.Printf("Removed topic %s\n", topic.Title)
			return nil
		},
	}
}
