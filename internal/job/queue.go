package job

import "strings"

// Unassigned returns the jobs that belong in the unassigned queue: no
// technician or no start instant, not archived, and not past active work.
// The queue is the drag source for unassigned-to-assigned transitions;
// a job never appears both here and on the board.
func Unassigned(jobs []*Job) []*Job {
	var out []*Job
	for _, j := range jobs {
		if j.Archived() || j.Status.Closed() {
			continue
		}
		if j.ResourceID == nil || j.ScheduledStart == nil {
			out = append(out, j)
		}
	}
	return out
}

// FilterText narrows jobs to those matching the query against title, id,
// or location, case-insensitively. An empty query returns the input
// unchanged. Order is preserved and the input slice is never mutated.
func FilterText(jobs []*Job, query string) []*Job {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return jobs
	}
	var out []*Job
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), query) ||
			strings.Contains(strings.ToLower(j.ID), query) ||
			strings.Contains(strings.ToLower(j.Location), query) {
			out = append(out, j)
		}
	}
	return out
}

// FilterPriority narrows jobs to the given priority tier. An empty
// priority returns the input unchanged.
func FilterPriority(jobs []*Job, p Priority) []*Job {
	if p == "" {
		return jobs
	}
	var out []*Job
	for _, j := range jobs {
		if j.Priority == p {
			out = append(out, j)
		}
	}
	return out
}
