package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui/commands"
)

// handleKeyMsg handles keyboard input. The active gesture, if any,
// captures navigation keys until it ends.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleFilterKeys(msg)
	}

	switch m.controller.State().(type) {
	case gesture.Dragging:
		return m.handleDragKeys(msg)
	case gesture.Resizing:
		return m.handleResizeKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys when no gesture is active.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.focus == FocusBoard {
			m.focus = FocusQueue
		} else {
			m.focus = FocusBoard
		}
		return m, nil

	// Navigation
	case "h", "left":
		return m.moveCursor(-1, 0), nil
	case "l", "right":
		return m.moveCursor(1, 0), nil
	case "j", "down":
		return m.moveCursor(0, 1), nil
	case "k", "up":
		return m.moveCursor(0, -1), nil

	// View switching keeps the reference date so the period under the
	// dispatcher's feet stays put.
	case "d":
		return m.switchView(grid.ViewDay)
	case "w":
		return m.switchView(grid.ViewWeek)
	case "m":
		return m.switchView(grid.ViewMonth)

	// Period navigation
	case "n":
		return m.setGrid(m.grid.Next())
	case "p":
		return m.setGrid(m.grid.Previous())
	case "t":
		return m.setGrid(m.grid.Today(timeNow()))

	// Queue narrowing
	case "/":
		if m.focus == FocusQueue {
			m.filtering = true
			m.queueInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case "f":
		m.priorityFilter = nextPriorityFilter(m.priorityFilter)
		m.clampCursor()
		if m.priorityFilter == "" {
			return m.withStatus("showing all priorities", false)
		}
		return m.withStatus(fmt.Sprintf("showing %s priority only", m.priorityFilter), false)

	// Gestures
	case "enter", " ":
		return m.startDrag()
	case "r":
		return m.startResize()

	case "y":
		return m.yankSelected()

	case "b":
		return m.requestBrief()

	case "esc":
		if m.queueInput.Value() != "" || m.priorityFilter != "" {
			m.queueInput.SetValue("")
			m.priorityFilter = ""
			m.clampCursor()
			return m, nil
		}
		m.statusMsg = ""
		m.brief = ""
		return m, nil
	}

	return m, nil
}

// handleDragKeys handles keys while a job is being dragged.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		return m.dragHoverAfter(-1, 0)
	case "l", "right":
		return m.dragHoverAfter(1, 0)
	case "j", "down":
		return m.dragHoverAfter(0, 1)
	case "k", "up":
		return m.dragHoverAfter(0, -1)

	// The drag survives period navigation so jobs can move across
	// weeks and months.
	case "n":
		return m.setGrid(m.grid.Next())
	case "p":
		return m.setGrid(m.grid.Previous())
	case "d":
		return m.switchView(grid.ViewDay)
	case "w":
		return m.switchView(grid.ViewWeek)
	case "m":
		return m.switchView(grid.ViewMonth)

	case "enter", " ":
		return m.applyOutcome(m.controller.Handle(gesture.Drop{Cell: m.cellAt(m.cursor)}, m.jobs))

	case "esc", "q":
		return m.applyOutcome(m.controller.Handle(gesture.Cancel{}, m.jobs))
	}

	return m, nil
}

// handleResizeKeys handles keys while a job is being resized. Each
// step is a quarter hour of travel; the new duration snaps on release.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const step = gesture.PixelsPerHour / 4

	switch msg.String() {
	case "j", "down":
		m.resizeY += step
		return m.resizeFeedback()
	case "k", "up":
		m.resizeY -= step
		return m.resizeFeedback()

	case "enter", " ":
		return m.applyOutcome(m.controller.Handle(gesture.ResizeRelease{}, m.jobs))

	case "esc", "q":
		return m.applyOutcome(m.controller.Handle(gesture.Cancel{}, m.jobs))
	}

	return m, nil
}

// handleFilterKeys handles keys while the queue filter input is focused.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.queueInput.Blur()
		m.clampCursor()
		return m, nil
	case "esc":
		m.filtering = false
		m.queueInput.Blur()
		m.queueInput.SetValue("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.queueInput, cmd = m.queueInput.Update(msg)
	m.clampCursor()
	return m, cmd
}

// moveCursor moves the active cursor, clamped to the panel's bounds.
func (m Model) moveCursor(dcol, drow int) Model {
	if m.focus == FocusQueue {
		m.queueCursor += drow
		m.clampCursor()
		return m
	}
	m.cursor.Col += dcol
	m.cursor.Row += drow
	m.clampCursor()
	LogCursorMove(m.cursor.Col, m.cursor.Row, "key")
	return m
}

// dragHoverAfter moves the cursor and reports the new hover target to
// the gesture machine.
func (m Model) dragHoverAfter(dcol, drow int) (tea.Model, tea.Cmd) {
	m.focus = FocusBoard
	m = m.moveCursor(dcol, drow)
	m.controller.Handle(gesture.DragHover{Cell: m.cellAt(m.cursor)}, m.jobs)
	return m, nil
}

// switchView changes the projection, keeping the reference date.
func (m Model) switchView(v grid.View) (tea.Model, tea.Cmd) {
	return m.setGrid(m.grid.WithView(v))
}

// setGrid swaps the grid and reloads the board for its range.
func (m Model) setGrid(g grid.Grid) (tea.Model, tea.Cmd) {
	m.grid = g
	m.loading = true
	m.rebuildBuckets()
	m.clampCursor()
	return m, commands.LoadBoard(m.store, m.grid)
}

// startDrag picks up the job under the cursor. Queue pick-ups shift
// focus to the board so navigation targets drop cells.
func (m Model) startDrag() (tea.Model, tea.Cmd) {
	j := m.selectedJob()
	if j == nil {
		return m, nil
	}

	out := m.controller.Handle(gesture.DragStart{Job: j}, m.jobs)
	if out.Kind != gesture.OutcomeNone {
		return m.applyOutcome(out)
	}

	m.focus = FocusBoard
	m.controller.Handle(gesture.DragHover{Cell: m.cellAt(m.cursor)}, m.jobs)
	LogGesture(m.controller.State(), "pick up "+j.ID)
	return m.withStatus(fmt.Sprintf("moving %q - enter to drop, esc to cancel", j.Title), false)
}

// startResize begins adjusting the duration of the job under the cursor.
func (m Model) startResize() (tea.Model, tea.Cmd) {
	j := m.selectedJob()
	if j == nil {
		return m, nil
	}

	m.resizeY = 0
	out := m.controller.Handle(gesture.ResizeStart{Job: j, AnchorY: 0}, m.jobs)
	if out.Kind != gesture.OutcomeNone {
		return m.applyOutcome(out)
	}

	LogGesture(m.controller.State(), "resize "+j.ID)
	return m.withStatus(fmt.Sprintf("resizing %q - j/k to adjust, enter to apply", j.Title), false)
}

// resizeFeedback reports the live position and shows the unsnapped
// pending duration.
func (m Model) resizeFeedback() (tea.Model, tea.Cmd) {
	m.controller.Handle(gesture.ResizeMove{Y: m.resizeY}, m.jobs)
	if s, ok := m.controller.State().(gesture.Resizing); ok {
		m.statusMsg = fmt.Sprintf("resizing %q: %d min", s.Job.Title, s.PendingMinutes())
		m.statusOK = false
	}
	return m, nil
}

// yankSelected copies a one-line summary of the selected job.
func (m Model) yankSelected() (tea.Model, tea.Cmd) {
	j := m.selectedJob()
	if j == nil {
		return m, nil
	}

	summary := j.Title
	if j.Location != "" {
		summary += " @ " + j.Location
	}
	if w, ok := j.EffectiveWindow(); ok {
		summary += " " + w.Start.Format("Mon 02 Jan 15:04") + "-" + w.End.Format("15:04")
	}

	if err := clipboard.WriteAll(summary); err != nil {
		LogError("clipboard", err)
		return m.withStatus(fmt.Sprintf("copy failed: %v", err), false)
	}
	return m.withStatus("copied to clipboard", true)
}

// requestBrief asks the LLM for a day brief for the technician under
// the cursor. Day view only; other views have no technician column.
func (m Model) requestBrief() (tea.Model, tea.Cmd) {
	if !m.config.AssistEnabled() {
		return m.withStatus("assist is not configured", false)
	}
	if m.grid.View != grid.ViewDay {
		return m.withStatus("day brief needs the day view", false)
	}
	tech := m.resourceAt(m.cursor.Col)
	if tech == nil {
		return m, nil
	}

	m.loading = true
	m.statusMsg = fmt.Sprintf("briefing %s...", tech.Name)
	return m, commands.Brief(m.config, tech, m.jobs, m.grid.Reference)
}

// nextPriorityFilter cycles the queue's priority narrowing.
func nextPriorityFilter(p job.Priority) job.Priority {
	switch p {
	case "":
		return job.PriorityUrgent
	case job.PriorityUrgent:
		return job.PriorityHigh
	case job.PriorityHigh:
		return job.PriorityMedium
	case job.PriorityMedium:
		return job.PriorityLow
	default:
		return ""
	}
}
