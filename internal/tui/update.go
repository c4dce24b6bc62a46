package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.BoardLoadedMsg:
		m.jobs = msg.Jobs
		m.resources = msg.Resources
		m.loading = false
		m.rebuildBuckets()
		m.clampCursor()
		return m, nil

	case commands.CommitResultMsg:
		m.loading = false
		out := m.controller.Resolve(msg.Commit, msg.Err)
		switch out.Kind {
		case gesture.OutcomeConfirmed:
			// Reload so the board reflects what the store accepted.
			m.loading = true
			updated, cmd := m.withStatus(out.Message, true)
			return updated, tea.Batch(cmd, commands.LoadBoard(m.store, m.grid))
		case gesture.OutcomeFailed:
			LogError("commit", msg.Err)
			return m.withStatus(out.Message, false)
		}
		// Superseded commit: a newer gesture owns the job now.
		return m, nil

	case commands.BriefMsg:
		m.loading = false
		m.brief = msg.Brief
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		LogError("command", msg.Err)
		return m.withStatus(fmt.Sprintf("error: %v", msg.Err), false)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}
