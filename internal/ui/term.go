package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/pablosanchis/dispatchr/internal/job"
)

// Color definitions for consistent styling across the UI.
var (
	// Urgent jobs: red and loud
	colorUrgent = color.New(color.FgRed, color.Bold)

	// High priority jobs: yellow
	colorHigh = color.New(color.FgYellow)

	// Scheduled jobs: cyan
	colorScheduled = color.New(color.FgCyan)

	// Done and billed jobs: green
	colorDone = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatPriority colors a job label by its priority tier.
func formatPriority(p job.Priority, s string) string {
	switch p {
	case job.PriorityUrgent:
		return colorUrgent.Sprint(s)
	case job.PriorityHigh:
		return colorHigh.Sprint(s)
	default:
		return s
	}
}

// formatStatus colors a status tag.
func formatStatus(s job.Status) string {
	switch s {
	case job.StatusScheduled, job.StatusInProgress:
		return colorScheduled.Sprint(string(s))
	case job.StatusCompleted, job.StatusInvoiced, job.StatusPaid:
		return colorDone.Sprint(string(s))
	default:
		return colorMuted.Sprint(string(s))
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
