// Package tui provides the terminal user interface for dispatchr.
package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pablosanchis/dispatchr/internal/config"
	"github.com/pablosanchis/dispatchr/internal/grid"
	"github.com/pablosanchis/dispatchr/internal/job"
)

// fakeStore records assignment updates and serves canned data.
type fakeStore struct {
	mu      sync.Mutex
	patches map[string]job.Patch
	fail    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{patches: make(map[string]job.Patch)}
}

func (f *fakeStore) UpdateJobAssignment(_ context.Context, jobID string, patch job.Patch) (*job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.patches[jobID] = patch
	return &job.Job{ID: jobID}, nil
}

func (f *fakeStore) CreateJob(context.Context, *job.Job) error        { return nil }
func (f *fakeStore) GetJob(context.Context, string) (*job.Job, error) { return nil, nil }
func (f *fakeStore) ListJobs(context.Context) ([]*job.Job, error)     { return nil, nil }

func (f *fakeStore) ListJobsByDateRange(context.Context, time.Time, time.Time) ([]*job.Job, error) {
	return nil, nil
}

func (f *fakeStore) ArchiveJob(context.Context, string) error            { return nil }
func (f *fakeStore) CreateResource(context.Context, *job.Resource) error { return nil }

func (f *fakeStore) ListResources(context.Context) ([]*job.Resource, error) {
	return nil, nil
}

func (f *fakeStore) Close() error { return nil }

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

// monday is the fixed reference week used by the fixtures.
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)

func scheduledJob(id, title, resourceID string, start time.Time, minutes int) *job.Job {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return &job.Job{
		ID:             id,
		Title:          title,
		ResourceID:     strPtr(resourceID),
		ScheduledStart: timePtr(start),
		ScheduledEnd:   timePtr(end),
		Status:         job.StatusScheduled,
		Priority:       job.PriorityMedium,
	}
}

// testModel builds a week-view model over a two-technician board with
// one scheduled job and one unassigned draft.
func testModel(t *testing.T) (Model, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	m := New(store, config.Default())
	m.width = 140
	m.height = 40
	m.grid = grid.New(grid.ViewWeek, monday, 6, 20)
	m.resources = []*job.Resource{
		{ID: "r1", Name: "Ana"},
		{ID: "r2", Name: "Bo"},
	}
	m.jobs = []*job.Job{
		scheduledJob("j1", "Boiler service", "r1", monday.Add(9*time.Hour), 60),
		{
			ID:                       "j2",
			Title:                    "Fix leak",
			Status:                   job.StatusDraft,
			Priority:                 job.PriorityUrgent,
			EstimatedDurationMinutes: intPtr(90),
		},
	}
	m.loading = false
	m.rebuildBuckets()
	return *m, store
}

func TestCellAtWeekView(t *testing.T) {
	m, _ := testModel(t)

	cell := m.cellAt(Position{Col: 1, Row: 3})
	if !cell.Date.Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("date = %v, want Tuesday", cell.Date)
	}
	if cell.Hour != 9 {
		t.Errorf("hour = %d, want 9", cell.Hour)
	}
	if cell.ResourceID != "" {
		t.Errorf("week cells carry no technician, got %q", cell.ResourceID)
	}
}

func TestCellAtDayView(t *testing.T) {
	m, _ := testModel(t)
	m.grid = m.grid.WithView(grid.ViewDay)
	m.rebuildBuckets()

	cell := m.cellAt(Position{Col: 1, Row: 0})
	if cell.ResourceID != "r2" {
		t.Errorf("resource = %q, want r2", cell.ResourceID)
	}
	if cell.Hour != 6 {
		t.Errorf("hour = %d, want 6", cell.Hour)
	}
}

func TestCellAtMonthView(t *testing.T) {
	m, _ := testModel(t)
	m.grid = m.grid.WithView(grid.ViewMonth)
	m.rebuildBuckets()

	cell := m.cellAt(Position{Col: 0, Row: 0})
	if cell.Hour != -1 {
		t.Errorf("month cells carry no hour slot, got %d", cell.Hour)
	}
	if cell.ResourceID != "" {
		t.Errorf("month cells carry no technician, got %q", cell.ResourceID)
	}
}

func TestJobsAtFindsScheduledJob(t *testing.T) {
	m, _ := testModel(t)

	// Monday column, 09:00 row.
	jobs := m.jobsAt(Position{Col: 0, Row: 3})
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("jobsAt = %v, want [j1]", jobs)
	}

	if jobs := m.jobsAt(Position{Col: 0, Row: 4}); len(jobs) != 0 {
		t.Errorf("10:00 slot should be empty, got %v", jobs)
	}
}

func TestJobsAtDayViewFiltersByTechnician(t *testing.T) {
	m, _ := testModel(t)
	m.grid = m.grid.WithView(grid.ViewDay)
	m.rebuildBuckets()

	if jobs := m.jobsAt(Position{Col: 0, Row: 3}); len(jobs) != 1 {
		t.Errorf("Ana's 09:00 slot should hold j1, got %v", jobs)
	}
	if jobs := m.jobsAt(Position{Col: 1, Row: 3}); len(jobs) != 0 {
		t.Errorf("Bo's 09:00 slot should be empty, got %v", jobs)
	}
}

func TestQueueJobsNarrowing(t *testing.T) {
	m, _ := testModel(t)

	if got := m.queueJobs(); len(got) != 1 || got[0].ID != "j2" {
		t.Fatalf("queue = %v, want [j2]", got)
	}

	m.queueInput.SetValue("leak")
	if got := m.queueJobs(); len(got) != 1 {
		t.Errorf("text narrowing should keep j2, got %v", got)
	}

	m.queueInput.SetValue("boiler")
	if got := m.queueJobs(); len(got) != 0 {
		t.Errorf("scheduled jobs never enter the queue, got %v", got)
	}

	m.queueInput.SetValue("")
	m.priorityFilter = job.PriorityLow
	if got := m.queueJobs(); len(got) != 0 {
		t.Errorf("priority narrowing should drop urgent j2, got %v", got)
	}
}

func TestClampCursor(t *testing.T) {
	m, _ := testModel(t)

	m.cursor = Position{Col: 20, Row: 99}
	m.clampCursor()
	if m.cursor.Col != 6 {
		t.Errorf("col = %d, want 6", m.cursor.Col)
	}
	if m.cursor.Row != len(m.grid.Hours())-1 {
		t.Errorf("row = %d, want last hour row", m.cursor.Row)
	}

	// Day view has one column per technician.
	m.grid = m.grid.WithView(grid.ViewDay)
	m.clampCursor()
	if m.cursor.Col != 1 {
		t.Errorf("day view col = %d, want 1", m.cursor.Col)
	}
}
