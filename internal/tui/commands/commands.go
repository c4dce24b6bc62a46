// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/assist"
	"github.com/pablosanchis/dispatchr/internal/config"
	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
)

// BoardLoadedMsg is sent when board data is loaded.
type BoardLoadedMsg struct {
	Jobs      []*job.Job
	Resources []*job.Resource
}

// CommitResultMsg is sent when an assignment update returns.
type CommitResultMsg struct {
	Commit *gesture.Commit
	Err    error
}

// BriefMsg is sent when a day brief is ready.
type BriefMsg struct {
	Brief string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// boardRange returns the date range the board needs loaded for a grid.
// Month views load the whole visible grid, including the padding days
// that belong to adjacent months.
func boardRange(g grid.Grid) (start, end time.Time) {
	switch g.View {
	case grid.ViewWeek:
		return dateutil.WeekRange(g.Reference)
	case grid.ViewMonth:
		return dateutil.MonthGridRange(g.Reference)
	default:
		day := dateutil.TruncateToDay(g.Reference)
		return day, day
	}
}

// LoadBoard loads jobs and technicians for the grid's visible range.
// Unscheduled jobs always come back so the queue stays complete.
func LoadBoard(store job.Store, g grid.Grid) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		start, end := boardRange(g)

		jobs, err := store.ListJobsByDateRange(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading jobs: %w", err)}
		}

		resources, err := store.ListResources(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading technicians: %w", err)}
		}

		return BoardLoadedMsg{Jobs: jobs, Resources: resources}
	}
}

// CommitAssignment sends an accepted gesture commit to the store. The
// result carries the original commit so the controller can match it
// against its in-flight token.
func CommitAssignment(updater job.Updater, commit *gesture.Commit) tea.Cmd {
	return func() tea.Msg {
		_, err := updater.UpdateJobAssignment(context.Background(), commit.JobID, commit.Patch)
		return CommitResultMsg{Commit: commit, Err: err}
	}
}

// Brief asks the configured LLM for a spoken-style day brief for one
// technician.
func Brief(cfg *config.Config, tech *job.Resource, jobs []*job.Job, date time.Time) tea.Cmd {
	return func() tea.Msg {
		client, err := assist.NewClient(cfg.Assist.Provider, cfg.Assist.Model, cfg.Assist.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating assist client: %w", err)}
		}

		brief, err := assist.DayBrief(context.Background(), client, tech, jobs, date)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("building day brief: %w", err)}
		}

		return BriefMsg{Brief: brief}
	}
}
