package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui/commands"
)

// statusDuration is how long transient footer messages stay visible.
const statusDuration = 4 * time.Second

// timeNow is swapped out in tests.
var timeNow = time.Now

// columns returns the number of board columns in the current view.
func (m Model) columns() int {
	if m.grid.View == grid.ViewDay {
		return len(m.resources)
	}
	return 7
}

// rowCount returns the number of board rows in the current view.
func (m Model) rowCount() int {
	if m.grid.View == grid.ViewMonth {
		return len(m.grid.Days()) / 7
	}
	return len(m.grid.Hours())
}

// cellAt maps a cursor position to a gesture drop target. Day view
// columns carry a technician; week and month cells do not, so drops
// there keep the job's current technician.
func (m Model) cellAt(pos Position) gesture.Cell {
	switch m.grid.View {
	case grid.ViewDay:
		cell := gesture.Cell{Date: m.grid.Reference, Hour: m.hourAt(pos.Row)}
		if r := m.resourceAt(pos.Col); r != nil {
			cell.ResourceID = r.ID
		}
		return cell
	case grid.ViewMonth:
		return gesture.Cell{Date: m.dayAt(pos.Row*7 + pos.Col), Hour: -1}
	default:
		return gesture.Cell{Date: m.dayAt(pos.Col), Hour: m.hourAt(pos.Row)}
	}
}

// jobsAt returns the scheduled jobs rendered in the cell at pos.
func (m Model) jobsAt(pos Position) []*job.Job {
	switch m.grid.View {
	case grid.ViewDay:
		r := m.resourceAt(pos.Col)
		if r == nil {
			return nil
		}
		var out []*job.Job
		for _, j := range m.buckets[grid.HourKey(m.grid.Reference, m.hourAt(pos.Row))] {
			if j.ResourceID != nil && *j.ResourceID == r.ID {
				out = append(out, j)
			}
		}
		return out
	case grid.ViewMonth:
		return m.buckets[grid.DayKey(m.dayAt(pos.Row*7 + pos.Col))]
	default:
		return m.buckets[grid.HourKey(m.dayAt(pos.Col), m.hourAt(pos.Row))]
	}
}

// selectedJob returns the job under the active cursor, or nil.
func (m Model) selectedJob() *job.Job {
	if m.focus == FocusQueue {
		queue := m.queueJobs()
		if m.queueCursor >= 0 && m.queueCursor < len(queue) {
			return queue[m.queueCursor]
		}
		return nil
	}
	if jobs := m.jobsAt(m.cursor); len(jobs) > 0 {
		return jobs[0]
	}
	return nil
}

// queueJobs returns the unassigned queue after text and priority narrowing.
func (m Model) queueJobs() []*job.Job {
	queue := job.Unassigned(m.jobs)
	queue = job.FilterText(queue, m.queueInput.Value())
	if m.priorityFilter != "" {
		queue = job.FilterPriority(queue, m.priorityFilter)
	}
	return queue
}

// resourceAt returns the technician for a day-view column, or nil.
func (m Model) resourceAt(col int) *job.Resource {
	if col < 0 || col >= len(m.resources) {
		return nil
	}
	return m.resources[col]
}

// dayAt returns the date for a day index in the current view's range.
func (m Model) dayAt(idx int) time.Time {
	days := m.grid.Days()
	if idx < 0 || idx >= len(days) {
		return m.grid.Reference
	}
	return days[idx]
}

// hourAt returns the hour for a board row, or -1 outside the band.
func (m Model) hourAt(row int) int {
	hours := m.grid.Hours()
	if row < 0 || row >= len(hours) {
		return -1
	}
	return hours[row]
}

// clampCursor keeps the cursor inside the current view's bounds. View
// switches and loads can shrink the board under it.
func (m *Model) clampCursor() {
	cols, rows := m.columns(), m.rowCount()
	if m.cursor.Col >= cols {
		m.cursor.Col = cols - 1
	}
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
	if m.cursor.Row >= rows {
		m.cursor.Row = rows - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	if queue := m.queueJobs(); m.queueCursor >= len(queue) {
		m.queueCursor = len(queue) - 1
	}
	if m.queueCursor < 0 {
		m.queueCursor = 0
	}
}

// rebuildBuckets re-indexes the loaded jobs into the current grid.
func (m *Model) rebuildBuckets() {
	m.buckets = m.grid.Bucket(m.jobs)
}

// colWidth returns the board column width for the current terminal.
func (m Model) colWidth() int {
	cols := m.columns()
	if cols == 0 {
		return defaultColWidth
	}
	avail := m.width - queueWidth - 6 - 4 // time column and app padding
	w := avail / cols
	if w < 8 {
		w = 8
	}
	if w > defaultColWidth+6 {
		w = defaultColWidth + 6
	}
	if m.width == 0 {
		return defaultColWidth
	}
	return w
}

// withStatus sets a transient footer message and schedules its clear.
func (m Model) withStatus(msg string, ok bool) (Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusOK = ok
	m.statusTime = time.Now().Add(statusDuration)
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// applyOutcome turns a gesture outcome into model updates and commands.
func (m Model) applyOutcome(out gesture.Outcome) (tea.Model, tea.Cmd) {
	switch out.Kind {
	case gesture.OutcomeBlocked, gesture.OutcomeCancelled, gesture.OutcomeConflict:
		LogGesture(m.controller.State(), out.Message)
		return m.withStatus(out.Message, false)
	case gesture.OutcomeCommit:
		LogGesture(m.controller.State(), "commit "+out.Commit.JobID)
		m.loading = true
		return m, commands.CommitAssignment(m.store, out.Commit)
	default:
		return m, nil
	}
}
