package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

func (a *App) addCmd() *cobra.Command {
	var (
		location string
		priority string
		estimate int
		date     string
		start    string
		tech     string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new job",
		Long: `Add a new job. Without --tech and --start the job lands in the
unassigned queue as a draft.

Example:
  dispatchr add "Boiler service" --location="12 Elm St" --priority=high
  dispatchr add "Meter swap" --tech=<id> --date=2025-01-10 --start=09:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			p, err := job.ParsePriority(priority)
			if err != nil {
				return err
			}

			var estimatePtr *int
			if estimate > 0 {
				estimatePtr = &estimate
			}

			j, err := job.New(args[0], location, p, estimatePtr)
			if err != nil {
				return err
			}

			if tech != "" && start != "" {
				day, err := dateutil.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
				hour, minute, err := dateutil.ParseClock(start)
				if err != nil {
					return fmt.Errorf("invalid start: %w", err)
				}
				at := dateutil.AtClock(day, hour, minute)
				j.ResourceID = &tech
				j.ScheduledStart = &at
				j.Status = job.StatusScheduled
			}

			ctx := context.Background()
			if err := a.store.CreateJob(ctx, j); err != nil {
				return fmt.Errorf("creating job: %w", err)
			}

			if j.ScheduledStart != nil {
				fmt.Printf("Created job %s: %s, scheduled %s\n",
					j.ID, j.Title, j.ScheduledStart.Format("2006-01-02 15:04"))
			} else {
				fmt.Printf("Created job %s: %s (unassigned)\n", j.ID, j.Title)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Job site address")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: low, medium, high, or urgent")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&tech, "tech", "", "Technician ID to assign")

	return cmd
}
