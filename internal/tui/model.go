// Package tui provides the terminal user interface for dispatchr.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/config"
	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui/commands"
	"github.com/pablosanchis/dispatchr/internal/tui/theme"
)

// Focus identifies which panel receives navigation keys.
type Focus int

const (
	FocusBoard Focus = iota
	FocusQueue
)

// Position is the board cursor: a column and a row in the current view.
// Day view columns are technicians; week and month columns are days.
type Position struct {
	Col int
	Row int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  job.Store
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Board state
	grid      grid.Grid
	jobs      []*job.Job
	resources []*job.Resource
	buckets   map[grid.CellKey][]*job.Job

	// Gesture state machine
	controller *gesture.Controller
	resizeY    int // live vertical position while resizing

	// Focus and cursors
	focus       Focus
	cursor      Position
	queueCursor int

	// Queue narrowing
	queueInput     textinput.Model
	filtering      bool
	priorityFilter job.Priority // empty means all priorities

	// Day brief
	brief string

	// Terminal dimensions
	width  int
	height int

	// Messages
	loading    bool
	statusMsg  string
	statusOK   bool // render the status in the confirmation color
	statusTime time.Time

	err error
}

// New creates a new TUI model.
func New(store job.Store, cfg *config.Config) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter..."
	filter.CharLimit = 64
	filter.Width = queueWidth - 4

	t := theme.Load(cfg.UI.Theme)
	styles := NewStyles(t)

	hourStart, hourEnd := cfg.HourBand()

	m := &Model{
		store:      store,
		config:     cfg,
		theme:      t,
		styles:     styles,
		grid:       grid.New(grid.ViewWeek, time.Now(), hourStart, hourEnd),
		controller: gesture.NewController(),
		focus:      FocusBoard,
		queueInput: filter,
		loading:    true,
	}
	m.cursor = Position{Col: weekdayIndex(time.Now()), Row: 0}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadBoard(m.store, m.grid)
}

// Run starts the TUI.
func Run(store job.Store, cfg *config.Config) error {
	return RunWithDebug(store, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(store job.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// weekdayIndex maps a time to its column in the week view, Monday first.
func weekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd - 1
}
