package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/spf13/cobra"
)

var weekdayByName = map[string]int{
	"domingo": 0, "lunes": 1, "martes": 2, "miercoles": 3, "miércoles": 3,
	"jueves": 4, "viernes": 5, "sabado": 6, "sábado": 6,
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

func parseWeekday(s string) (int, error) {
	if day, ok := weekdayByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return day, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage weekly class schedules",
	}
	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleListCmd(app),
		newScheduleRemoveCmd(app),
	)
	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var subjectArg, day, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weekly class slot",
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
			weekday, err := parseWeekday(day)
			if err != nil {
				return err
			}
			sched := &domain.ClassSchedule{
				SubjectID: subject.ID,
				DayOfWeek: weekday,
				StartTime: start,
				EndTime:   end,
			}
			if err := app.Catalog.CreateSchedule(ctx, sched); err != nil {
				return err
			}
			fmt.Printf("Added %s %s-%s for %s\n",
				formatter.WeekdayName(weekday), start, end, subject.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectArg, "subject", "", "Subject name, code or ID")
	cmd.Flags().StringVar(&day, "day", "", "Weekday (lunes..domingo)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			profile, err := app.requireProfile(ctx)
			if err != nil {
				return err
			}
			schedules, err := app.Catalog.ListSchedules(ctx, profile.ID)
			if err != nil {
				return err
			}
			if len(schedules) == 0 {
				fmt.Println(formatter.Dim("No class slots yet. Add one with: estudia schedule add"))
				return nil
			}
			subjects, err := app.Catalog.ListSubjects(ctx, profile.ID)
			if err != nil {
				return err
			}
			nameOf := formatter.SubjectNames(subjects)

			rows := make([][]string, 0, len(schedules))
			for _, c := range schedules {
				rows = append(rows, []string{
					formatter.WeekdayName(c.DayOfWeek),
					fmt.Sprintf("%s-%s", c.StartTime, c.EndTime),
					formatter.Bold(nameOf(c.SubjectID)),
					formatter.Dim(shortID(c.ID)),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"Day", "Time", "Subject", "ID"}, rows))
			return nil
		},
	}
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <schedule-id>",
		Short: "Delete a class slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.DeleteSchedule(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed class slot")
			return nil
		},
	}
}
