package job

import "time"

const (
	// DefaultDurationMinutes is assumed when a job has neither an explicit
	// end nor a duration estimate.
	DefaultDurationMinutes = 60

	// MinDurationMinutes is the floor for any effective window. An end
	// closer to the start than this is clamped up, never accepted as-is.
	MinDurationMinutes = 15
)

// Window is a half-open [Start, End) interval on the board.
type Window struct {
	Start time.Time
	End   time.Time
}

// DurationMinutes returns the window length in minutes.
func (w Window) DurationMinutes() int {
	return int(w.End.Sub(w.Start).Minutes())
}

// Overlaps reports whether two half-open windows overlap. Touching
// windows (one ends exactly where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// EffectiveWindow resolves the job's optional schedule fields into a
// concrete window. Returns ok=false if the job has no scheduled start.
//
// The end is the explicit ScheduledEnd when present, otherwise
// start + EstimatedDurationMinutes (default 60). An end yielding less
// than MinDurationMinutes is clamped to start + MinDurationMinutes.
func (j *Job) EffectiveWindow() (Window, bool) {
	if j.ScheduledStart == nil {
		return Window{}, false
	}
	start := *j.ScheduledStart

	var end time.Time
	if j.ScheduledEnd != nil {
		end = *j.ScheduledEnd
	} else {
		minutes := DefaultDurationMinutes
		if j.EstimatedDurationMinutes != nil && *j.EstimatedDurationMinutes > 0 {
			minutes = *j.EstimatedDurationMinutes
		}
		end = start.Add(time.Duration(minutes) * time.Minute)
	}

	if floor := start.Add(MinDurationMinutes * time.Minute); end.Before(floor) {
		end = floor
	}

	return Window{Start: start, End: end}, true
}

// DurationMinutes returns the effective window length in minutes, or 0
// for an unscheduled job. It drives the rendered height of a block.
func (j *Job) DurationMinutes() int {
	w, ok := j.EffectiveWindow()
	if !ok {
		return 0
	}
	return w.DurationMinutes()
}
