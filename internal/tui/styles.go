// Package tui provides the terminal user interface for dispatchr.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/tui/theme"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 18

// Queue panel width on the right side of the board.
const queueWidth = 30

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	theme *theme.Theme

	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color
	colorSuccess     lipgloss.Color

	// Title and headers
	TitleStyle          lipgloss.Style
	HeaderStyle         lipgloss.Style
	ColHeaderStyle      lipgloss.Style
	ColHeaderTodayStyle lipgloss.Style
	TimeColumnStyle     lipgloss.Style

	// Board cells
	CellStyle      lipgloss.Style
	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style
	HoverStyle     lipgloss.Style
	GhostStyle     lipgloss.Style // the job being dragged, at its source cell

	// Queue panel
	QueueStyle         lipgloss.Style
	QueueTitleStyle    lipgloss.Style
	QueueItemStyle     lipgloss.Style
	QueueSelectedStyle lipgloss.Style
	QueueUrgentStyle   lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	GestureStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{theme: t}

	s.colorBg = theme.Color(t.Bg)
	s.colorBgHighlight = theme.Color(t.BgHighlight)
	s.colorBgSelection = theme.Color(t.BgSelection)
	s.colorFg = theme.Color(t.Fg)
	s.colorFgMuted = theme.Color(t.FgMuted)
	s.colorAccent = theme.Color(t.Accent)
	s.colorWarning = theme.Color(t.Warning)
	s.colorSuccess = theme.Color(t.Success)

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.ColHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Width(defaultColWidth)

	s.ColHeaderTodayStyle = s.ColHeaderStyle.
		Foreground(s.colorAccent)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Width(6)

	s.CellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.EmptyCellStyle = s.CellStyle.
		Foreground(s.colorFgMuted)

	s.CursorStyle = s.CellStyle.
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.HoverStyle = s.CellStyle.
		Background(s.colorAccent).
		Foreground(s.colorBg).
		Bold(true)

	s.GhostStyle = s.CellStyle.
		Foreground(s.colorFgMuted).
		Italic(true)

	s.QueueStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		Padding(0, 1).
		Width(queueWidth)

	s.QueueTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.QueueItemStyle = lipgloss.NewStyle().
		Foreground(s.colorFg)

	s.QueueSelectedStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.QueueUrgentStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Bold(true)

	s.SuccessStyle = lipgloss.NewStyle().
		Foreground(s.colorSuccess).
		Bold(true)

	s.GestureStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.AppStyle = lipgloss.NewStyle().
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2)

	return s
}

// JobStyle returns the cell style for a job block, colored by status.
func (s *Styles) JobStyle(st job.Status, width int) lipgloss.Style {
	return s.CellStyle.
		Width(width).
		Background(s.theme.StatusColor(st)).
		Foreground(s.colorBg).
		Bold(true)
}

// ColHeaderStyleWidth returns the column header style with the given width.
func (s *Styles) ColHeaderStyleWidth(width int, today bool) lipgloss.Style {
	if today {
		return s.ColHeaderTodayStyle.Width(width)
	}
	return s.ColHeaderStyle.Width(width)
}

// CursorStyleWidth returns the cursor style with the given width.
func (s *Styles) CursorStyleWidth(width int) lipgloss.Style {
	return s.CursorStyle.Width(width)
}

// HoverStyleWidth returns the drop-target style with the given width.
func (s *Styles) HoverStyleWidth(width int) lipgloss.Style {
	return s.HoverStyle.Width(width)
}

// EmptyCellStyleWidth returns the empty cell style with the given width.
func (s *Styles) EmptyCellStyleWidth(width int) lipgloss.Style {
	return s.EmptyCellStyle.Width(width)
}

// GhostStyleWidth returns the dragged-job source style with the given width.
func (s *Styles) GhostStyleWidth(width int) lipgloss.Style {
	return s.GhostStyle.Width(width)
}
