package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS jobs (
			id                         TEXT PRIMARY KEY,
			title                      TEXT NOT NULL,
			location                   TEXT NOT NULL DEFAULT '',
			resource_id                TEXT REFERENCES resources(id),
			scheduled_start            DATETIME,
			scheduled_end              DATETIME,
			estimated_duration_minutes INTEGER,
			status                     TEXT NOT NULL CHECK(status IN ('draft', 'scheduled', 'in_progress', 'completed', 'invoiced', 'paid')),
			priority                   TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high', 'urgent')),
			archived_at                DATETIME,
			created_at                 DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resources (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_jobs_resource ON jobs(resource_id);
		CREATE INDEX IF NOT EXISTS idx_jobs_scheduled ON jobs(scheduled_start);
		CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
