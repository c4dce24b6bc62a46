// Package db provides the SQLite job store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pablosanchis/dispatchr/internal/job"
)

// SQLite implements job.Store using SQLite. It also serves as the update
// collaborator: UpdateJobAssignment is the sole write path the
// scheduling core uses.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Timestamps are stored as UTC RFC3339 strings so range comparisons work
// lexically.
const jobColumns = `id, title, location, resource_id, scheduled_start, scheduled_end,
	estimated_duration_minutes, status, priority, archived_at, created_at`

// CreateJob adds a new job. The store assigns the ID.
func (s *SQLite) CreateJob(ctx context.Context, j *job.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		j.ID,
		j.Title,
		j.Location,
		j.ResourceID,
		formatTimePtr(j.ScheduledStart),
		formatTimePtr(j.ScheduledEnd),
		j.EstimatedDurationMinutes,
		j.Status,
		j.Priority,
		formatTimePtr(j.ArchivedAt),
		j.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}

	return nil
}

// GetJob retrieves a job by ID. Returns nil, nil if not found.
func (s *SQLite) GetJob(ctx context.Context, id string) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	j, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying job: %w", err)
	}
	return j, nil
}

// ListJobs returns all non-archived jobs, unassigned first by creation,
// then scheduled ones by start.
func (s *SQLite) ListJobs(ctx context.Context) ([]*job.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE archived_at IS NULL
		ORDER BY scheduled_start IS NOT NULL, scheduled_start, created_at
	`
	return s.queryJobs(ctx, query)
}

// ListJobsByDateRange returns non-archived jobs whose scheduled start
// falls within [start, end], plus all unscheduled jobs so the unassigned
// queue always has its full input.
func (s *SQLite) ListJobsByDateRange(ctx context.Context, start, end time.Time) ([]*job.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE archived_at IS NULL
		  AND (scheduled_start IS NULL OR (scheduled_start >= ? AND scheduled_start <= ?))
		ORDER BY scheduled_start IS NOT NULL, scheduled_start, created_at
	`
	return s.queryJobs(ctx, query, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

// UpdateJobAssignment applies the patch and returns the updated job.
func (s *SQLite) UpdateJobAssignment(ctx context.Context, jobID string, patch job.Patch) (*job.Job, error) {
	if patch.Empty() {
		return s.GetJob(ctx, jobID)
	}

	var (
		sets []string
		args []any
	)
	if patch.ResourceID != nil {
		sets = append(sets, "resource_id = ?")
		args = append(args, *patch.ResourceID)
	}
	if patch.ScheduledStart != nil {
		sets = append(sets, "scheduled_start = ?")
		args = append(args, patch.ScheduledStart.UTC().Format(time.RFC3339))
	}
	if patch.ScheduledEnd != nil {
		sets = append(sets, "scheduled_end = ?")
		args = append(args, patch.ScheduledEnd.UTC().Format(time.RFC3339))
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, job.ErrInvalidStatus
		}
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.EstimatedDurationMinutes != nil {
		sets = append(sets, "estimated_duration_minutes = ?")
		args = append(args, *patch.EstimatedDurationMinutes)
	}
	args = append(args, jobID)

	query := "UPDATE jobs SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating job assignment: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, job.ErrJobNotFound
	}

	return s.GetJob(ctx, jobID)
}

// ArchiveJob removes a job from the active scheduling surface.
func (s *SQLite) ArchiveJob(ctx context.Context, id string) error {
	query := `UPDATE jobs SET archived_at = ? WHERE id = ? AND archived_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("archiving job: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// CreateResource adds a technician. The store assigns the ID.
func (s *SQLite) CreateResource(ctx context.Context, r *job.Resource) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `INSERT INTO resources (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, r.ID, r.Name, r.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting technician: %w", err)
	}

	return nil
}

// ListResources returns all technicians ordered by name.
func (s *SQLite) ListResources(ctx context.Context) ([]*job.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM resources ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying technicians: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var resources []*job.Resource
	for rows.Next() {
		var (
			r         job.Resource
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning technician: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		resources = append(resources, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technicians: %w", err)
	}

	return resources, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryJobs(ctx context.Context, query string, args ...any) ([]*job.Job, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []*job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}

	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*job.Job, error) {
	var (
		j              job.Job
		resourceID     sql.NullString
		scheduledStart sql.NullString
		scheduledEnd   sql.NullString
		estimated      sql.NullInt64
		archivedAt     sql.NullString
		createdAt      string
	)

	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Location,
		&resourceID,
		&scheduledStart,
		&scheduledEnd,
		&estimated,
		&j.Status,
		&j.Priority,
		&archivedAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	if resourceID.Valid {
		j.ResourceID = &resourceID.String
	}
	if j.ScheduledStart, err = parseTimePtr(scheduledStart); err != nil {
		return nil, fmt.Errorf("parsing scheduled start: %w", err)
	}
	if j.ScheduledEnd, err = parseTimePtr(scheduledEnd); err != nil {
		return nil, fmt.Errorf("parsing scheduled end: %w", err)
	}
	if estimated.Valid {
		minutes := int(estimated.Int64)
		j.EstimatedDurationMinutes = &minutes
	}
	if j.ArchivedAt, err = parseTimePtr(archivedAt); err != nil {
		return nil, fmt.Errorf("parsing archived at: %w", err)
	}
	if j.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &j, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func parseTimePtr(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, err
	}
	t = t.Local()
	return &t, nil
}
