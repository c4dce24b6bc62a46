package job

import (
	"context"
	"time"
)

// Patch describes a partial update to a job's assignment. Nil fields are
// left unchanged; only the fields being modified are supplied.
type Patch struct {
	ResourceID               *string
	ScheduledStart           *time.Time
	ScheduledEnd             *time.Time
	Status                   *Status
	EstimatedDurationMinutes *int
}

// Empty returns true if the patch changes nothing.
func (p Patch) Empty() bool {
	return p.ResourceID == nil && p.ScheduledStart == nil && p.ScheduledEnd == nil &&
		p.Status == nil && p.EstimatedDurationMinutes == nil
}

// Updater is the external collaborator the scheduling core commits
// through. It is the sole writer of truth: the core applies no local
// mutation and re-derives its views after the store reports a change.
// The call may fail; callers surface the failure and retain prior state.
type Updater interface {
	// UpdateJobAssignment applies the patch to the job and returns the
	// updated record. Returns ErrJobNotFound if the id is unknown.
	UpdateJobAssignment(ctx context.Context, jobID string, patch Patch) (*Job, error)
}

// Store defines the persistence interface for jobs and technicians.
type Store interface {
	Updater

	// CreateJob adds a new job. The store assigns the ID.
	CreateJob(ctx context.Context, j *Job) error

	// GetJob retrieves a job by ID. Returns nil, nil if not found.
	GetJob(ctx context.Context, id string) (*Job, error)

	// ListJobs returns all non-archived jobs.
	ListJobs(ctx context.Context) ([]*Job, error)

	// ListJobsByDateRange returns non-archived jobs whose scheduled start
	// falls within [start, end], plus all unscheduled jobs.
	ListJobsByDateRange(ctx context.Context, start, end time.Time) ([]*Job, error)

	// ArchiveJob removes a job from the active scheduling surface.
	ArchiveJob(ctx context.Context, id string) error

	// CreateResource adds a technician. The store assigns the ID.
	CreateResource(ctx context.Context, r *Resource) error

	// ListResources returns all technicians ordered by name.
	ListResources(ctx context.Context) ([]*Resource, error)

	// Close releases any resources held by the store.
	Close() error
}
