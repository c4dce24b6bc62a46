package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/schedule"
)

func (a *App) assignCmd() *cobra.Command {
	var (
		tech  string
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "assign [job-id]",
		Short: "Assign a job to a technician and time slot",
		Long: `Assign a job to a technician, a time slot, or both. The target
slot is checked against the technician's schedule before committing;
an overlapping job aborts the assignment.`,
		Example: `  dispatchr assign 5f2b... --tech=9c81... --date=2025-01-10 --start=09:00
  dispatchr assign 5f2b... --start=14:00 --end=16:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := context.Background()
			j, err := a.store.GetJob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading job: %w", err)
			}
			if j == nil {
				return fmt.Errorf("job %s not found", args[0])
			}

			patch := job.Patch{}
			resourceID := ""
			if tech != "" {
				patch.ResourceID = &tech
				resourceID = tech
			} else if j.ResourceID != nil {
				resourceID = *j.ResourceID
			}

			if start != "" {
				day, err := dateutil.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
				hour, minute, err := dateutil.ParseClock(start)
				if err != nil {
					return fmt.Errorf("invalid start: %w", err)
				}
				startAt := dateutil.AtClock(day, hour, minute)
				patch.ScheduledStart = &startAt

				if end != "" {
					eh, em, err := dateutil.ParseClock(end)
					if err != nil {
						return fmt.Errorf("invalid end: %w", err)
					}
					endAt := dateutil.AtClock(day, eh, em)
					if !endAt.After(startAt) {
						return fmt.Errorf("end %s is not after start %s", end, start)
					}
					patch.ScheduledEnd = &endAt
				}

				if j.Status == job.StatusDraft {
					scheduled := job.StatusScheduled
					patch.Status = &scheduled
				}

				if resourceID != "" {
					dayJobs, err := a.store.ListJobsByDateRange(ctx, day, day)
					if err != nil {
						return fmt.Errorf("loading schedule: %w", err)
					}
					until := assignmentEnd(j, startAt, patch.ScheduledEnd)
					if obstruction := schedule.FirstConflict(dayJobs, resourceID, startAt, until, j.ID); obstruction != nil {
						return fmt.Errorf("slot conflicts with %q", obstruction.Title)
					}
				}
			}

			if patch.Empty() {
				return fmt.Errorf("nothing to change: pass --tech or --start")
			}

			updated, err := a.store.UpdateJobAssignment(ctx, j.ID, patch)
			if err != nil {
				return fmt.Errorf("updating assignment: %w", err)
			}

			if updated.ScheduledStart != nil {
				fmt.Printf("Assigned %s: %s at %s\n",
					shortID(updated.ID), updated.Title, updated.ScheduledStart.Format("2006-01-02 15:04"))
			} else {
				fmt.Printf("Assigned %s: %s\n", shortID(updated.ID), updated.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tech, "tech", "", "Technician ID")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, defaults to the job's duration)")

	return cmd
}

// assignmentEnd resolves the instant the conflict check runs against
// when an assignment has no explicit end: the job's estimate, or the
// default duration, never under the duration floor.
func assignmentEnd(j *job.Job, start time.Time, explicit *time.Time) time.Time {
	if explicit != nil {
		return *explicit
	}
	minutes := job.DefaultDurationMinutes
	if j.EstimatedDurationMinutes != nil && *j.EstimatedDurationMinutes > 0 {
		minutes = *j.EstimatedDurationMinutes
	}
	if minutes < job.MinDurationMinutes {
		minutes = job.MinDurationMinutes
	}
	return start.Add(time.Duration(minutes) * time.Minute)
}
