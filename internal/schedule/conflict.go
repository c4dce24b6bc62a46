// Package schedule provides conflict detection for candidate assignments.
//
// Detection is an optimistic client-side pre-check: the store remains the
// arbiter of final consistency. The scan is linear over the live job
// collection rather than an incremental index; a technician's load is
// small enough that rebuilding on demand is both simpler and fast enough.
package schedule

import (
	"time"

	"github.com/pablosanchis/dispatchr/internal/job"
)

// FirstConflict returns the first committed assignment for resourceID
// whose effective window overlaps [start, end), or nil if none. The job
// with excludeJobID is skipped so a moved or resized job never conflicts
// with its own prior placement. Unscheduled and archived jobs can never
// conflict.
func FirstConflict(jobs []*job.Job, resourceID string, start, end time.Time, excludeJobID string) *job.Job {
	candidate := job.Window{Start: start, End: end}
	for _, j := range jobs {
		if j.ID == excludeJobID {
			continue
		}
		if !j.Schedulable() || *j.ResourceID != resourceID {
			continue
		}
		w, ok := j.EffectiveWindow()
		if !ok {
			continue
		}
		if candidate.Overlaps(w) {
			return j
		}
	}
	return nil
}

// HasConflict reports whether the candidate assignment overlaps any
// existing committed assignment for the resource.
func HasConflict(jobs []*job.Job, resourceID string, start, end time.Time, excludeJobID string) bool {
	return FirstConflict(jobs, resourceID, start, end, excludeJobID) != nil
}
