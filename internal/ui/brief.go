package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/assist"
	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

func (a *App) briefCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "brief [tech-id]",
		Short: "Generate a spoken-style day brief for a technician",
		Long: `Ask the configured LLM for a short morning brief covering one
technician's jobs for a day. Requires assist.provider in the config.`,
		Example: `  dispatchr brief 9c81...
  dispatchr brief 9c81... --date=2025-01-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if !a.config.AssistEnabled() {
				return fmt.Errorf("assist is not configured: set assist.provider in the config")
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}

			ctx := context.Background()
			tech, err := a.findTech(ctx, args[0])
			if err != nil {
				return err
			}

			jobs, err := a.store.ListJobsByDateRange(ctx, day, day)
			if err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			client, err := assist.NewClient(a.config.Assist.Provider, a.config.Assist.Model, a.config.Assist.BaseURL)
			if err != nil {
				return fmt.Errorf("creating assist client: %w", err)
			}

			brief, err := assist.DayBrief(ctx, client, tech, jobs, day)
			if err != nil {
				return fmt.Errorf("building day brief: %w", err)
			}

			fmt.Println(formatHeader(fmt.Sprintf("%s - %s", tech.Name, day.Format("Mon, 02 Jan"))))
			fmt.Println(brief)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to brief (YYYY-MM-DD, default: today)")

	return cmd
}

// findTech resolves a technician by ID, accepting unambiguous prefixes.
func (a *App) findTech(ctx context.Context, id string) (*job.Resource, error) {
	resources, err := a.store.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}

	var match *job.Resource
	for _, r := range resources {
		if r.ID == id {
			return r, nil
		}
		if len(id) >= 4 && len(r.ID) >= len(id) && r.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("technician id %q is ambiguous", id)
			}
			match = r
		}
	}
	if match == nil {
		return nil, fmt.Errorf("technician %s not found", id)
	}
	return match, nil
}
