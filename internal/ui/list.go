package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs in a date range",
		Long: `List jobs scheduled within a date range, plus the unassigned queue.

If no dates are specified, lists today's jobs.
If only --start is specified, lists jobs for that single day.`,
		Example: `  dispatchr list
  dispatchr list --start=2025-01-15
  dispatchr list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			start, err := dateutil.ParseDate(startDate)
			if err != nil {
				return err
			}
			end := start
			if endDate != "" {
				if end, err = dateutil.ParseDate(endDate); err != nil {
					return err
				}
			}

			jobs, err := a.store.ListJobsByDateRange(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing jobs: %w", err)
			}

			techNames, err := a.techNames(context.Background())
			if err != nil {
				return err
			}

			printJobs(jobs, techNames)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

func (a *App) unassignedCmd() *cobra.Command {
	var (
		query    string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "unassigned",
		Short: "List the unassigned queue",
		Long: `List jobs waiting for a technician or a start time.

Archived jobs and jobs past completion never appear here.`,
		Example: `  dispatchr unassigned
  dispatchr unassigned --query=boiler --priority=urgent`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			jobs, err := a.store.ListJobs(context.Background())
			if err != nil {
				return fmt.Errorf("listing jobs: %w", err)
			}

			queue := job.Unassigned(jobs)
			queue = job.FilterText(queue, query)
			if priority != "" {
				p, err := job.ParsePriority(priority)
				if err != nil {
					return err
				}
				queue = job.FilterPriority(queue, p)
			}

			if len(queue) == 0 {
				fmt.Println("No unassigned jobs.")
				return nil
			}

			fmt.Println(formatHeader(fmt.Sprintf("Unassigned (%d)", len(queue))))
			for _, j := range queue {
				line := fmt.Sprintf("  %s  %s", formatMuted(shortID(j.ID)), formatPriority(j.Priority, j.Title))
				if j.Location != "" {
					line += formatMuted(" @ " + j.Location)
				}
				fmt.Println(line)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Narrow by title, id, or location")
	cmd.Flags().StringVar(&priority, "priority", "", "Narrow by priority tier")

	return cmd
}

// printJobs prints scheduled jobs grouped by date, queue jobs last.
func printJobs(jobs []*job.Job, techNames map[string]string) {
	scheduled := make([]*job.Job, 0, len(jobs))
	var queued []*job.Job
	for _, j := range jobs {
		if j.ScheduledStart != nil {
			scheduled = append(scheduled, j)
		} else {
			queued = append(queued, j)
		}
	}

	if len(scheduled) == 0 && len(queued) == 0 {
		fmt.Println("No jobs found in the specified date range.")
		return
	}

	var currentDate string
	for _, j := range scheduled {
		date := j.ScheduledStart.Format("2006-01-02")
		if date != currentDate {
			if currentDate != "" {
				fmt.Println()
			}
			fmt.Println(formatHeader("=== " + date + " ==="))
			currentDate = date
		}

		w, _ := j.EffectiveWindow()
		tech := formatMuted("unassigned")
		if j.ResourceID != nil {
			if name, ok := techNames[*j.ResourceID]; ok {
				tech = name
			} else {
				tech = shortID(*j.ResourceID)
			}
		}
		fmt.Printf("  %s  %s-%s  %s  %s  [%s]\n",
			formatMuted(shortID(j.ID)),
			w.Start.Format("15:04"),
			w.End.Format("15:04"),
			formatPriority(j.Priority, j.Title),
			tech,
			formatStatus(j.Status),
		)
	}

	if len(queued) > 0 {
		if currentDate != "" {
			fmt.Println()
		}
		fmt.Println(formatHeader("=== unassigned ==="))
		for _, j := range queued {
			fmt.Printf("  %s  %s  [%s]\n",
				formatMuted(shortID(j.ID)),
				formatPriority(j.Priority, j.Title),
				formatStatus(j.Status),
			)
		}
	}
}

// techNames maps technician IDs to display names.
func (a *App) techNames(ctx context.Context) (map[string]string, error) {
	resources, err := a.store.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}
	names := make(map[string]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}
	return names, nil
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
