package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablosanchis/dispatchr/internal/gesture"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/tui/commands"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.handleKeyMsg(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

func TestViewSwitchKeepsReference(t *testing.T) {
	m, _ := testModel(t)
	m.grid = m.grid.Today(monday.AddDate(0, 0, 2)) // Wednesday

	m, cmd := press(t, m, "m")
	if m.grid.View != grid.ViewMonth {
		t.Fatalf("view = %s, want month", m.grid.View)
	}
	if !m.grid.Reference.Equal(monday.AddDate(0, 0, 2)) {
		t.Errorf("reference moved on view switch: %v", m.grid.Reference)
	}
	if cmd == nil {
		t.Error("view switch should reload the board")
	}

	m, _ = press(t, m, "w")
	if !m.grid.Reference.Equal(monday.AddDate(0, 0, 2)) {
		t.Errorf("reference moved on switch back: %v", m.grid.Reference)
	}
}

func TestPeriodNavigation(t *testing.T) {
	m, _ := testModel(t)

	m, _ = press(t, m, "n")
	if !m.grid.Reference.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("next week reference = %v", m.grid.Reference)
	}

	m, _ = press(t, m, "p", "p")
	if !m.grid.Reference.Equal(monday.AddDate(0, 0, -7)) {
		t.Errorf("previous week reference = %v", m.grid.Reference)
	}
}

func TestDragDropCommitsThroughStore(t *testing.T) {
	m, store := testModel(t)
	m.cursor = Position{Col: 0, Row: 3} // j1 at Monday 09:00

	m, _ = press(t, m, "enter")
	if _, ok := m.controller.State().(gesture.Dragging); !ok {
		t.Fatalf("state = %T, want Dragging", m.controller.State())
	}

	// Drop on Tuesday 09:00.
	m, cmd := press(t, m, "l", "enter")
	if cmd == nil {
		t.Fatal("drop should produce a commit command")
	}
	if !m.loading {
		t.Error("commit should mark the board loading")
	}

	result, ok := cmd().(commands.CommitResultMsg)
	if !ok {
		t.Fatalf("cmd result = %T, want CommitResultMsg", cmd())
	}
	if result.Err != nil {
		t.Fatalf("commit error: %v", result.Err)
	}

	patch := store.patches["j1"]
	want := monday.AddDate(0, 0, 1).Add(9 * time.Hour)
	if patch.ScheduledStart == nil || !patch.ScheduledStart.Equal(want) {
		t.Errorf("start = %v, want %v", patch.ScheduledStart, want)
	}
	if patch.ScheduledEnd == nil || !patch.ScheduledEnd.Equal(want.Add(time.Hour)) {
		t.Errorf("end = %v, want one hour later", patch.ScheduledEnd)
	}

	updated, _ := m.Update(result)
	m = updated.(Model)
	if !m.statusOK || !strings.Contains(m.statusMsg, "Boiler service") {
		t.Errorf("confirmation = %q", m.statusMsg)
	}
}

func TestDropOnOccupiedSlotBlocks(t *testing.T) {
	m, _ := testModel(t)
	m.jobs = append(m.jobs, scheduledJob("j3", "Meter swap", "r1", monday.AddDate(0, 0, 1).Add(9*time.Hour), 60))
	m.rebuildBuckets()
	m.cursor = Position{Col: 0, Row: 3}

	m, cmd := press(t, m, "enter", "l", "enter")
	if cmd == nil {
		t.Fatal("expected a status command")
	}
	if !strings.Contains(m.statusMsg, "already has a job") {
		t.Errorf("status = %q, want conflict notice", m.statusMsg)
	}
	if m.controller.Active() {
		t.Error("conflict should end the gesture")
	}
	if m.loading {
		t.Error("no commit should be issued on conflict")
	}
}

func TestQueueJobNeedsTechnicianColumn(t *testing.T) {
	m, _ := testModel(t)

	// Pick up the unassigned job from the queue, drop on a week cell.
	m, _ = press(t, m, "tab", "enter")
	if _, ok := m.controller.State().(gesture.Dragging); !ok {
		t.Fatalf("state = %T, want Dragging", m.controller.State())
	}
	if m.focus != FocusBoard {
		t.Error("queue pick-up should move focus to the board")
	}

	m, _ = press(t, m, "enter")
	if !strings.Contains(m.statusMsg, "no technician") {
		t.Errorf("status = %q, want no-technician notice", m.statusMsg)
	}
}

func TestResizeFlow(t *testing.T) {
	m, store := testModel(t)
	m.cursor = Position{Col: 0, Row: 3}

	m, _ = press(t, m, "r")
	s, ok := m.controller.State().(gesture.Resizing)
	if !ok {
		t.Fatalf("state = %T, want Resizing", m.controller.State())
	}
	if s.OriginalDurationMinutes != 60 {
		t.Fatalf("original duration = %d, want 60", s.OriginalDurationMinutes)
	}

	// One step is a quarter hour of travel; live feedback is unsnapped.
	m, _ = press(t, m, "j")
	s = m.controller.State().(gesture.Resizing)
	if got := s.PendingMinutes(); got != 74 {
		t.Errorf("pending = %d, want 74", got)
	}

	m, cmd := press(t, m, "j", "j", "j", "enter")
	if cmd == nil {
		t.Fatal("release should produce a commit command")
	}
	cmd()

	patch := store.patches["j1"]
	if patch.EstimatedDurationMinutes == nil || *patch.EstimatedDurationMinutes != 120 {
		t.Errorf("estimate = %v, want 120 after snapping", patch.EstimatedDurationMinutes)
	}
}

func TestResizeCancelLeavesJobAlone(t *testing.T) {
	m, store := testModel(t)
	m.cursor = Position{Col: 0, Row: 3}

	m, _ = press(t, m, "r", "j", "esc")
	if m.controller.Active() {
		t.Error("esc should end the resize")
	}
	if len(store.patches) != 0 {
		t.Errorf("no patch expected, got %v", store.patches)
	}
}

func TestResizeUnscheduledJobBlocked(t *testing.T) {
	m, _ := testModel(t)

	m, _ = press(t, m, "tab", "r")
	if m.controller.Active() {
		t.Error("queue jobs have no explicit window to resize")
	}
	if m.statusMsg == "" {
		t.Error("expected a blocked notice")
	}
}

func TestCommitFailureSurfacesNotice(t *testing.T) {
	m, store := testModel(t)
	store.fail = errors.New("connection reset")
	m.cursor = Position{Col: 0, Row: 3}

	m, cmd := press(t, m, "enter", "l", "enter")
	result := cmd().(commands.CommitResultMsg)
	if result.Err == nil {
		t.Fatal("expected a failing commit")
	}

	updated, _ := m.Update(result)
	m = updated.(Model)
	if !strings.Contains(m.statusMsg, "update failed") {
		t.Errorf("status = %q, want failure notice", m.statusMsg)
	}
	if m.statusOK {
		t.Error("failure is not a confirmation")
	}
}

func TestFilterTyping(t *testing.T) {
	m, _ := testModel(t)

	m, _ = press(t, m, "tab", "/")
	if !m.filtering {
		t.Fatal("slash should focus the filter input")
	}

	m, _ = press(t, m, "l", "e", "a", "k")
	if got := m.queueInput.Value(); got != "leak" {
		t.Errorf("filter value = %q, want %q", got, "leak")
	}

	m, _ = press(t, m, "enter")
	if m.filtering {
		t.Error("enter should leave filter mode")
	}
	if got := m.queueJobs(); len(got) != 1 || got[0].ID != "j2" {
		t.Errorf("narrowed queue = %v, want [j2]", got)
	}

	m, _ = press(t, m, "esc")
	if m.queueInput.Value() != "" {
		t.Error("esc should clear the narrowing")
	}
}

func TestPriorityFilterCycle(t *testing.T) {
	m, _ := testModel(t)

	m, _ = press(t, m, "f")
	if m.priorityFilter != "urgent" {
		t.Errorf("filter = %q, want urgent", m.priorityFilter)
	}

	m, _ = press(t, m, "f", "f", "f", "f")
	if m.priorityFilter != "" {
		t.Errorf("cycle should return to all, got %q", m.priorityFilter)
	}
}
