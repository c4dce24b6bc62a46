package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pablosanchis/dispatchr/internal/config"
	"github.com/pablosanchis/dispatchr/internal/db"
	"github.com/pablosanchis/dispatchr/internal/job"
)

func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewApp(store, config.Default())
}

func TestAssignmentEnd(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		job      *job.Job
		explicit *time.Time
		want     time.Time
	}{
		{
			name:     "explicit end wins",
			job:      &job.Job{EstimatedDurationMinutes: intPtr(120)},
			explicit: timePtr(start.Add(30 * time.Minute)),
			want:     start.Add(30 * time.Minute),
		},
		{
			name: "estimate drives the end",
			job:  &job.Job{EstimatedDurationMinutes: intPtr(90)},
			want: start.Add(90 * time.Minute),
		},
		{
			name: "no estimate falls back to the default",
			job:  &job.Job{},
			want: start.Add(60 * time.Minute),
		},
		{
			name: "tiny estimate clamps to the floor",
			job:  &job.Job{EstimatedDurationMinutes: intPtr(5)},
			want: start.Add(15 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignmentEnd(tt.job, start, tt.explicit)
			if !got.Equal(tt.want) {
				t.Errorf("assignmentEnd = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindTechByPrefix(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	ana := &job.Resource{ID: "aaaa1111-0000-0000-0000-000000000000", Name: "Ana"}
	bo := &job.Resource{ID: "bbbb2222-0000-0000-0000-000000000000", Name: "Bo"}
	for _, r := range []*job.Resource{ana, bo} {
		if err := a.store.CreateResource(ctx, r); err != nil {
			t.Fatalf("creating technician: %v", err)
		}
	}

	got, err := a.findTech(ctx, "aaaa")
	if err != nil {
		t.Fatalf("findTech: %v", err)
	}
	if got.Name != "Ana" {
		t.Errorf("found %q, want Ana", got.Name)
	}

	if _, err := a.findTech(ctx, "cccc"); err == nil {
		t.Error("unknown prefix should fail")
	}

	// Short prefixes never match; too easy to hit by accident.
	if _, err := a.findTech(ctx, "aa"); err == nil {
		t.Error("two-character prefix should fail")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("aaaa1111-0000"); got != "aaaa1111" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short input should pass through, got %q", got)
	}
}
