// Package ui implements the dispatchr command line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablosanchis/dispatchr/internal/config"
	"github.com/pablosanchis/dispatchr/internal/db"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  job.Store
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given store and config.
// A nil store is opened lazily from the configured database path.
func NewApp(store job.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}

	a.root = &cobra.Command{
		Use:   "dispatchr",
		Short: "A dispatch board for field-service scheduling",
		Long: `Dispatchr is a terminal dispatch board for field-service teams.

It shows technician schedules on a day, week, or month grid, keeps an
unassigned queue, and moves jobs between slots and technicians with
conflict checking at every commit.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to dispatchr-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.unassignedCmd())
	a.root.AddCommand(a.assignCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.archiveCmd())
	a.root.AddCommand(a.techCmd())
	a.root.AddCommand(a.briefCmd())

	return a
}

// ensureStore opens the configured database on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return nil
}

// Close releases the store if the app opened one.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dispatchr %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
