package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui/theme"
)

// View renders the dispatch board.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	board := m.renderBoard()
	queue := m.renderQueue()
	main := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", queue)
	footer := m.renderFooter()

	return m.styles.AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", main, "", footer),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("dispatchr")
	label := m.styles.HeaderStyle.Render(m.rangeLabel())
	view := m.styles.HelpStyle.Render("[" + string(m.grid.View) + "]")
	loading := ""
	if m.loading {
		loading = m.styles.HelpStyle.Render("  loading...")
	}
	return title + "  " + label + "  " + view + loading
}

// rangeLabel names the visible period for the header.
func (m Model) rangeLabel() string {
	switch m.grid.View {
	case grid.ViewDay:
		return m.grid.Reference.Format("Mon, 02 Jan 2006")
	case grid.ViewMonth:
		return m.grid.Reference.Format("January 2006")
	default:
		monday, sunday := dateutil.WeekRange(m.grid.Reference)
		return monday.Format("02 Jan") + " - " + sunday.Format("02 Jan 2006")
	}
}

func (m Model) renderBoard() string {
	if m.grid.View == grid.ViewMonth {
		return m.renderMonth()
	}
	return m.renderHourBoard()
}

// renderHourBoard renders the day and week views: a time column on the
// left, one column per technician or per day.
func (m Model) renderHourBoard() string {
	w := m.colWidth()
	cols := m.columns()
	if cols == 0 {
		return m.styles.HelpStyle.Render("no technicians yet - add one with: dispatchr tech add")
	}

	var b strings.Builder

	// Column headers
	b.WriteString(m.styles.TimeColumnStyle.Render(""))
	for col := 0; col < cols; col++ {
		b.WriteString(m.styles.ColHeaderStyleWidth(w, m.colIsToday(col)).Render(m.colHeader(col, w)))
	}
	b.WriteString("\n")

	for row, hour := range m.grid.Hours() {
		b.WriteString(m.styles.TimeColumnStyle.Render(fmt.Sprintf("%02d:00", hour)))
		for col := 0; col < cols; col++ {
			b.WriteString(m.renderCell(Position{Col: col, Row: row}, w))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderMonth renders whole-week rows of day cells with job counts.
func (m Model) renderMonth() string {
	w := m.colWidth()
	days := m.grid.Days()

	var b strings.Builder
	for col, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(m.styles.ColHeaderStyleWidth(w, m.colIsToday(col)).Render(name))
	}
	b.WriteString("\n")

	for row := 0; row < len(days)/7; row++ {
		for col := 0; col < 7; col++ {
			b.WriteString(m.renderMonthCell(Position{Col: col, Row: row}, w))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderCell renders one hour-slot cell of the day or week board.
func (m Model) renderCell(pos Position, w int) string {
	jobs := m.jobsAt(pos)
	content := ""
	if len(jobs) > 0 {
		content = jobLabel(jobs[0], w)
		if len(jobs) > 1 {
			content = fmt.Sprintf("%s +%d", ansi.Truncate(content, w-3, "…"), len(jobs)-1)
		}
	}

	return m.cellStyle(pos, jobs, w).Render(ansi.Truncate(content, w, "…"))
}

// renderMonthCell renders one day cell of the month board.
func (m Model) renderMonthCell(pos Position, w int) string {
	date := m.dayAt(pos.Row*7 + pos.Col)
	jobs := m.jobsAt(pos)

	content := date.Format("02")
	if len(jobs) > 0 {
		content = fmt.Sprintf("%s %d job", content, len(jobs))
		if len(jobs) > 1 {
			content += "s"
		}
	}

	style := m.cellStyle(pos, jobs, w)
	if len(jobs) == 0 && date.Month() != m.grid.Reference.Month() {
		style = m.styles.GhostStyleWidth(w)
	}
	return style.Render(ansi.Truncate(content, w, "…"))
}

// cellStyle picks the style for a board cell: drop target, cursor,
// dragged source, job block, or empty.
func (m Model) cellStyle(pos Position, jobs []*job.Job, w int) lipgloss.Style {
	onCursor := m.focus == FocusBoard && pos == m.cursor

	if d, ok := m.controller.State().(gesture.Dragging); ok {
		if onCursor {
			return m.styles.HoverStyleWidth(w)
		}
		for _, j := range jobs {
			if j.ID == d.Job.ID {
				return m.styles.GhostStyleWidth(w)
			}
		}
	} else if onCursor {
		return m.styles.CursorStyleWidth(w)
	}

	if len(jobs) > 0 {
		return m.styles.JobStyle(jobs[0].Status, w)
	}
	return m.styles.EmptyCellStyleWidth(w)
}

// colHeader labels a board column: technician names in day view, dates
// in week view.
func (m Model) colHeader(col, w int) string {
	if m.grid.View == grid.ViewDay {
		if r := m.resourceAt(col); r != nil {
			return ansi.Truncate(r.Name, w, "…")
		}
		return ""
	}
	return m.dayAt(col).Format("Mon 02")
}

// colIsToday reports whether a column represents today.
func (m Model) colIsToday(col int) bool {
	switch m.grid.View {
	case grid.ViewDay:
		return dateutil.SameDay(m.grid.Reference, timeNow())
	case grid.ViewMonth:
		return false
	default:
		return dateutil.SameDay(m.dayAt(col), timeNow())
	}
}

// renderQueue renders the unassigned panel on the right.
func (m Model) renderQueue() string {
	queue := m.queueJobs()

	var b strings.Builder
	b.WriteString(m.styles.QueueTitleStyle.Render(fmt.Sprintf("Unassigned (%d)", len(queue))))
	b.WriteString("\n")

	if m.filtering || m.queueInput.Value() != "" {
		b.WriteString(m.queueInput.View())
		b.WriteString("\n")
	}
	if m.priorityFilter != "" {
		b.WriteString(m.styles.HelpStyle.Render("priority: " + string(m.priorityFilter)))
		b.WriteString("\n")
	}

	if len(queue) == 0 {
		b.WriteString(m.styles.HelpStyle.Render("nothing waiting"))
	}

	for i, j := range queue {
		label := jobLabel(j, queueWidth-4)
		style := m.styles.QueueItemStyle
		switch {
		case m.focus == FocusQueue && i == m.queueCursor:
			style = m.styles.QueueSelectedStyle
		case j.Priority == job.PriorityUrgent:
			style = m.styles.QueueUrgentStyle
		}
		b.WriteString(style.Render(ansi.Truncate(label, queueWidth-4, "…")))
		b.WriteString("\n")
	}

	return m.styles.QueueStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderFooter renders the status line, gesture hint, and key help.
func (m Model) renderFooter() string {
	var lines []string

	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.statusOK {
			style = m.styles.SuccessStyle
		}
		lines = append(lines, style.Render(m.statusMsg))
	}

	if m.controller.Active() {
		lines = append(lines, m.styles.GestureStyle.Render(gesture.DescribeState(m.controller.State())))
	}

	if m.brief != "" {
		lines = append(lines, m.styles.QueueStyle.Width(m.width-6).Render(m.brief))
	}

	lines = append(lines, m.styles.HelpStyle.Render(
		"hjkl move  d/w/m view  n/p/t period  enter pick up/drop  r resize  tab queue  / filter  y yank  b brief  q quit",
	))

	return strings.Join(lines, "\n")
}

// jobLabel builds the display label for a job block.
func jobLabel(j *job.Job, w int) string {
	label := j.Title
	if marker := theme.PriorityMarker(j.Priority); marker != "" {
		label = marker + " " + label
	}
	return ansi.Truncate(label, w, "…")
}
