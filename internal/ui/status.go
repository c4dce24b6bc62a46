package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/job"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [job-id] [status]",
		Short: "Change a job's lifecycle status",
		Long: `Move a job through its lifecycle: draft, scheduled, in_progress,
completed, invoiced, paid.

Jobs at completed or later leave the unassigned queue for good.`,
		Example: `  dispatchr status 5f2b... in_progress
  dispatchr status 5f2b... completed`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			status, err := job.ParseStatus(args[1])
			if err != nil {
				return err
			}

			updated, err := a.store.UpdateJobAssignment(context.Background(), args[0], job.Patch{Status: &status})
			if err != nil {
				return fmt.Errorf("updating status: %w", err)
			}

			fmt.Printf("Job %s is now %s\n", shortID(updated.ID), formatStatus(updated.Status))
			return nil
		},
	}
}

func (a *App) archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [job-id]",
		Short: "Archive a job",
		Long:  "Archive a job. Archived jobs leave the board and the unassigned queue.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			if err := a.store.ArchiveJob(context.Background(), args[0]); err != nil {
				return fmt.Errorf("archiving job: %w", err)
			}

			fmt.Printf("Archived job %s\n", shortID(args[0]))
			return nil
		},
	}
}
