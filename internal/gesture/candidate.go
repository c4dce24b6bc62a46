package gesture

import (
	"time"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
	"github.com/pablosanchis/dispatchr/internal/job"
)

// DefaultDropHour is the start hour used when a job with no prior start
// is dropped on a cell that carries no hour slot.
const DefaultDropHour = 9

// Candidate is the proposed assignment a terminating gesture produced.
// It lives for a single gesture: checked for conflicts, committed or
// discarded.
type Candidate struct {
	Job        *job.Job
	ResourceID string
	Start      time.Time

	// End is the explicit end to commit, nil when the job's end stays
	// absent and the fallback duration applies downstream.
	End *time.Time

	// ConflictEnd is the instant the conflict pre-check uses: End when
	// explicit, otherwise the end the effective window would resolve to.
	ConflictEnd time.Time

	// DurationMinutes is set by resize candidates so the stored estimate
	// stays consistent with the explicit window.
	DurationMinutes *int

	resize bool
}

// Valid returns false for a drop that cannot produce an assignment,
// such as a queue job dropped on a cell with no technician.
func (c *Candidate) Valid() bool {
	return c != nil && c.ResourceID != ""
}

// Patch builds the partial update to send to the store. Only changed
// fields are populated; a drag commit of a draft also moves it to
// scheduled.
func (c *Candidate) Patch() job.Patch {
	p := job.Patch{
		ScheduledStart: &c.Start,
		ScheduledEnd:   c.End,
	}
	if c.Job.ResourceID == nil || *c.Job.ResourceID != c.ResourceID {
		id := c.ResourceID
		p.ResourceID = &id
	}
	if c.DurationMinutes != nil {
		p.EstimatedDurationMinutes = c.DurationMinutes
	}
	if !c.resize && c.Job.Status == job.StatusDraft {
		scheduled := job.StatusScheduled
		p.Status = &scheduled
	}
	return p
}

// dropCandidate computes the assignment a drop proposes.
//
// Start: the targeted hour slot at minute zero when one was targeted;
// otherwise the job's prior time-of-day shifted to the target date;
// otherwise DefaultDropHour. End: the job's original duration preserved
// when it had an explicit window, else left absent.
func dropCandidate(j *job.Job, cell Cell) *Candidate {
	resourceID := cell.ResourceID
	if resourceID == "" && j.ResourceID != nil {
		resourceID = *j.ResourceID
	}

	var start time.Time
	switch {
	case cell.Hour >= 0:
		start = dateutil.AtClock(cell.Date, cell.Hour, 0)
	case j.ScheduledStart != nil:
		prior := *j.ScheduledStart
		start = dateutil.AtClock(cell.Date, prior.Hour(), prior.Minute())
	default:
		start = dateutil.AtClock(cell.Date, DefaultDropHour, 0)
	}

	c := &Candidate{Job: j, ResourceID: resourceID, Start: start}

	if j.ScheduledStart != nil && j.ScheduledEnd != nil {
		// The preserved duration is never committed below the floor.
		end := start.Add(j.ScheduledEnd.Sub(*j.ScheduledStart))
		if floor := start.Add(job.MinDurationMinutes * time.Minute); end.Before(floor) {
			end = floor
		}
		c.End = &end
		c.ConflictEnd = end
		return c
	}

	minutes := job.DefaultDurationMinutes
	if j.EstimatedDurationMinutes != nil && *j.EstimatedDurationMinutes > 0 {
		minutes = *j.EstimatedDurationMinutes
	}
	if minutes < job.MinDurationMinutes {
		minutes = job.MinDurationMinutes
	}
	c.ConflictEnd = start.Add(time.Duration(minutes) * time.Minute)
	return c
}

// resizeCandidate computes the assignment a resize release proposes:
// same technician and start, new end from the snapped duration delta.
func resizeCandidate(s Resizing) *Candidate {
	minutes := s.OriginalDurationMinutes + quantize(deltaMinutes(s.DeltaPixels))
	if minutes < job.MinDurationMinutes {
		minutes = job.MinDurationMinutes
	}

	start := *s.Job.ScheduledStart
	end := start.Add(time.Duration(minutes) * time.Minute)

	resourceID := ""
	if s.Job.ResourceID != nil {
		resourceID = *s.Job.ResourceID
	}

	return &Candidate{
		Job:             s.Job,
		ResourceID:      resourceID,
		Start:           start,
		End:             &end,
		ConflictEnd:     end,
		DurationMinutes: &minutes,
		resize:          true,
	}
}
