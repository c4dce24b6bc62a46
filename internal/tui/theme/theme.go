// Package theme provides color themes for the TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pablosanchis/dispatchr/internal/job"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string
	Bg          string // base background
	BgHighlight string // job blocks, subtle highlight
	BgSelection string // cursor, selection
	Fg          string // primary foreground
	FgMuted     string // muted elements, closed jobs
	Accent      string // title, borders
	Warning     string // conflicts, gesture mode
	Success     string // confirmations

	// Status colors, keyed by job status.
	Draft      string
	Scheduled  string
	InProgress string
	Completed  string
	Billed     string // invoiced and paid
}

// Catppuccin-flavored palettes, matching the board's dark and light modes.
var palettes = map[string]Theme{
	"mocha": {
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#6c7086",
		Accent:      "#89b4fa",
		Warning:     "#f9e2af",
		Success:     "#a6e3a1",
		Draft:       "#9399b2",
		Scheduled:   "#89b4fa",
		InProgress:  "#fab387",
		Completed:   "#a6e3a1",
		Billed:      "#cba6f7",
	},
	"latte": {
		Name:        "latte",
		Bg:          "#eff1f5",
		BgHighlight: "#ccd0da",
		BgSelection: "#bcc0cc",
		Fg:          "#4c4f69",
		FgMuted:     "#8c8fa1",
		Accent:      "#1e66f5",
		Warning:     "#df8e1d",
		Success:     "#40a02b",
		Draft:       "#6c6f85",
		Scheduled:   "#1e66f5",
		InProgress:  "#fe640b",
		Completed:   "#40a02b",
		Billed:      "#8839ef",
	},
}

// Available returns the known theme names.
func Available() []string {
	return []string{"mocha", "latte"}
}

// IsAvailable reports whether a theme name is known.
func IsAvailable(name string) bool {
	_, ok := palettes[strings.ToLower(name)]
	return ok
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns a theme by name, falling back to mocha.
func Load(name string) *Theme {
	t, ok := palettes[strings.ToLower(name)]
	if !ok {
		t = palettes["mocha"]
	}
	return &t
}

// StatusColor returns the block color for a job status.
func (t *Theme) StatusColor(s job.Status) lipgloss.Color {
	switch s {
	case job.StatusDraft:
		return Color(t.Draft)
	case job.StatusScheduled:
		return Color(t.Scheduled)
	case job.StatusInProgress:
		return Color(t.InProgress)
	case job.StatusCompleted:
		return Color(t.Completed)
	case job.StatusInvoiced, job.StatusPaid:
		return Color(t.Billed)
	default:
		return Color(t.Fg)
	}
}

// PriorityMarker returns the display decoration for a priority tier.
func PriorityMarker(p job.Priority) string {
	switch p {
	case job.PriorityUrgent:
		return "!!"
	case job.PriorityHigh:
		return "!"
	default:
		return ""
	}
}
