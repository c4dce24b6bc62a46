// Package gesture owns the drag-to-reschedule and resize-to-change-
// duration state machines. States and events are plain values and every
// transition is a pure function, so the machines are testable without
// any UI harness. The embedding surface (the TUI) translates its input
// into events and executes the commits the controller hands back.
package gesture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pablosanchis/dispatchr/internal/job"
)

// Gesture errors.
var (
	ErrBadPayload   = errors.New("drag payload is not a job reference")
	ErrNotResizable = errors.New("job needs a start and an end to be resized")
)

// PixelsPerHour is the fixed scale mapping pointer displacement to a
// duration delta while resizing.
const PixelsPerHour = 50

// QuantumMinutes is the resize snap increment, applied on release.
const QuantumMinutes = 15

// DragPayload identifies the job being dragged. It is the typed form of
// whatever crosses the source-to-target serialization boundary.
type DragPayload struct {
	JobID string
}

const payloadPrefix = "job:"

// EncodePayload serializes a payload for transport between widgets.
func EncodePayload(p DragPayload) string {
	return payloadPrefix + p.JobID
}

// ParsePayload deserializes a drag payload. A malformed payload yields
// ErrBadPayload; callers treat it as a no-op cancellation, never a crash.
func ParsePayload(s string) (DragPayload, error) {
	if !strings.HasPrefix(s, payloadPrefix) {
		return DragPayload{}, ErrBadPayload
	}
	id := strings.TrimPrefix(s, payloadPrefix)
	if id == "" {
		return DragPayload{}, ErrBadPayload
	}
	return DragPayload{JobID: id}, nil
}

// Cell is a drop or hover target on the grid: a technician column plus a
// date, optionally narrowed to an hour slot. ResourceID is empty when
// the cell carries no technician (month cells outside the board).
// Hour is -1 when no hour slot was targeted.
type Cell struct {
	ResourceID string
	Date       time.Time
	Hour       int
}

// State is the tagged-variant gesture state: None, Dragging or Resizing.
type State interface {
	isState()
}

// None means no gesture is active.
type None struct{}

// Dragging holds the dragged job and the cell currently hovered. Hover
// is display-only; validation happens at drop.
type Dragging struct {
	Job   *job.Job
	Hover *Cell
}

// Resizing holds the resize anchor and the live pixel delta. Snapping to
// QuantumMinutes happens once, on release.
type Resizing struct {
	Job                     *job.Job
	AnchorY                 int
	OriginalDurationMinutes int
	DeltaPixels             int
}

func (None) isState()     {}
func (Dragging) isState() {}
func (Resizing) isState() {}

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// DragStart begins dragging a job card, from the grid or the queue.
type DragStart struct{ Job *job.Job }

// DragHover updates the highlighted target cell.
type DragHover struct{ Cell Cell }

// Drop releases the dragged job over a cell.
type Drop struct{ Cell Cell }

// ResizeStart begins resizing a job's duration from its bottom edge.
type ResizeStart struct {
	Job     *job.Job
	AnchorY int
}

// ResizeMove reports the pointer's vertical position while resizing.
type ResizeMove struct{ Y int }

// ResizeRelease ends the resize and proposes the new duration.
type ResizeRelease struct{}

// Cancel aborts the active gesture without any mutation.
type Cancel struct{}

func (DragStart) isEvent()     {}
func (DragHover) isEvent()     {}
func (Drop) isEvent()          {}
func (ResizeStart) isEvent()   {}
func (ResizeMove) isEvent()    {}
func (ResizeRelease) isEvent() {}
func (Cancel) isEvent()        {}

// Resizable returns true if the job has both a start and an explicit
// end; only such jobs may be resized.
func Resizable(j *job.Job) bool {
	return j != nil && j.ScheduledStart != nil && j.ScheduledEnd != nil
}

// Transition applies an event to a state and returns the next state
// plus the candidate assignment a terminating event proposes, if any.
// It is pure: no conflict checking, no IO. Events that do not apply in
// the current state leave it unchanged: a gesture cannot start while
// another is active, and move events without a gesture are ignored.
func Transition(state State, ev Event) (State, *Candidate) {
	switch s := state.(type) {
	case Dragging:
		switch e := ev.(type) {
		case DragHover:
			cell := e.Cell
			s.Hover = &cell
			return s, nil
		case Drop:
			return None{}, dropCandidate(s.Job, e.Cell)
		case Cancel:
			return None{}, nil
		}
		return s, nil

	case Resizing:
		switch e := ev.(type) {
		case ResizeMove:
			s.DeltaPixels = e.Y - s.AnchorY
			return s, nil
		case ResizeRelease:
			return None{}, resizeCandidate(s)
		case Cancel:
			return None{}, nil
		}
		return s, nil

	default:
		switch e := ev.(type) {
		case DragStart:
			if e.Job == nil {
				return None{}, nil
			}
			return Dragging{Job: e.Job}, nil
		case ResizeStart:
			if !Resizable(e.Job) {
				return None{}, nil
			}
			w, _ := e.Job.EffectiveWindow()
			return Resizing{
				Job:                     e.Job,
				AnchorY:                 e.AnchorY,
				OriginalDurationMinutes: w.DurationMinutes(),
			}, nil
		}
		return None{}, nil
	}
}

// PendingMinutes returns the live, unsnapped duration a resize would
// produce if released now. Display feedback only.
func (s Resizing) PendingMinutes() int {
	raw := s.OriginalDurationMinutes + deltaMinutes(s.DeltaPixels)
	if raw < job.MinDurationMinutes {
		return job.MinDurationMinutes
	}
	return raw
}

func deltaMinutes(pixels int) int {
	return pixels * 60 / PixelsPerHour
}

// quantize snaps minutes to the nearest QuantumMinutes step.
func quantize(minutes int) int {
	half := QuantumMinutes / 2
	if minutes < 0 {
		return -quantize(-minutes)
	}
	return (minutes + half) / QuantumMinutes * QuantumMinutes
}

// DescribeState renders a short human label for a state, for footers
// and debug logs.
func DescribeState(s State) string {
	switch st := s.(type) {
	case Dragging:
		return fmt.Sprintf("dragging %q", st.Job.Title)
	case Resizing:
		return fmt.Sprintf("resizing %q (%dm pending)", st.Job.Title, st.PendingMinutes())
	default:
		return "idle"
	}
}
