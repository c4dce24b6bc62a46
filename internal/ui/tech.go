package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/job"
)

func (a *App) techCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Manage technicians",
	}
	cmd.AddCommand(a.techAddCmd())
	cmd.AddCommand(a.techListCmd())
	return cmd
}

func (a *App) techAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a technician",
		Example: `  dispatchr tech add "Ana Ruiz"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			r := &job.Resource{Name: args[0]}
			if err := a.store.CreateResource(context.Background(), r); err != nil {
				return fmt.Errorf("creating technician: %w", err)
			}

			fmt.Printf("Added technician %s: %s\n", shortID(r.ID), r.Name)
			return nil
		},
	}
}

func (a *App) techListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List technicians",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			resources, err := a.store.ListResources(context.Background())
			if err != nil {
				return fmt.Errorf("listing technicians: %w", err)
			}

			if len(resources) == 0 {
				fmt.Println("No technicians yet. Add one with: dispatchr tech add \"Name\"")
				return nil
			}

			fmt.Println(formatHeader(fmt.Sprintf("Technicians (%d)", len(resources))))
			for _, r := range resources {
				fmt.Printf("  %s  %s\n", formatMuted(r.ID), r.Name)
			}
			return nil
		},
	}
}
