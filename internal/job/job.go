// Package job defines the core domain types for dispatchr.
package job

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("unknown job status")
	ErrInvalidPriority = errors.New("unknown job priority")
)

// Domain errors.
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrResourceNotFound = errors.New("technician not found")
)

// Status represents the lifecycle state of a job.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusInvoiced   Status = "invoiced"
	StatusPaid       Status = "paid"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusInProgress, StatusCompleted, StatusInvoiced, StatusPaid:
		return true
	default:
		return false
	}
}

// Closed returns true for statuses past active field work. Closed jobs
// never appear in the unassigned queue.
func (s Status) Closed() bool {
	switch s {
	case StatusCompleted, StatusInvoiced, StatusPaid:
		return true
	default:
		return false
	}
}

// Priority represents display emphasis only; it never affects conflict
// detection or scheduling order.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ParsePriority converts a string to a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Job represents a unit of field work. Scheduling fields are optional: a
// job with no resource or no start lives in the unassigned queue rather
// than on the board.
type Job struct {
	ID                       string
	Title                    string
	Location                 string
	ResourceID               *string
	ScheduledStart           *time.Time
	ScheduledEnd             *time.Time
	EstimatedDurationMinutes *int
	Status                   Status
	Priority                 Priority
	ArchivedAt               *time.Time
	CreatedAt                time.Time
}

// New creates a new Job with validation. The job starts as a draft with
// no assignment.
func New(title, location string, priority Priority, estimatedMinutes *int) (*Job, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	return &Job{
		Title:                    title,
		Location:                 location,
		EstimatedDurationMinutes: estimatedMinutes,
		Status:                   StatusDraft,
		Priority:                 priority,
		CreatedAt:                time.Now(),
	}, nil
}

// Archived returns true if the job has been archived.
func (j *Job) Archived() bool {
	return j.ArchivedAt != nil
}

// Schedulable returns true if the job can be placed on the board: it has
// a technician, a start instant, and is not archived.
func (j *Job) Schedulable() bool {
	return j.ResourceID != nil && j.ScheduledStart != nil && !j.Archived()
}

// Resource represents a technician column on the board. It is read-only
// to the scheduling core beyond its identifier and label.
type Resource struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
