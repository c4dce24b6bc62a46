package gesture

import (
	"fmt"
	"sync"

	"github.com/pablosanchis/dispatchr/internal/job"
	"github.com/pablosanchis/dispatchr/internal/schedule"
)

// Tracker guards against racing writes to the same job. Each commit gets
// a token; a later commit on the same job supersedes the earlier token,
// so a stale success handler is ignored instead of overwriting newer
// state. One commit per job may be in flight at a time.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]uint64
	next     uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]uint64)}
}

// InFlight returns true if the job has an unresolved commit.
func (t *Tracker) InFlight(jobID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inflight[jobID]
	return ok
}

// Begin registers a commit and returns its token, superseding any prior
// in-flight commit for the job.
func (t *Tracker) Begin(jobID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.inflight[jobID] = t.next
	return t.next
}

// Finish resolves a commit. It returns false when the token has been
// superseded, in which case the caller must discard the outcome.
func (t *Tracker) Finish(jobID string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.inflight[jobID]
	if !ok || current != token {
		return false
	}
	delete(t.inflight, jobID)
	return true
}

// OutcomeKind classifies what a handled event produced.
type OutcomeKind int

const (
	// OutcomeNone: state may have changed, nothing to surface.
	OutcomeNone OutcomeKind = iota
	// OutcomeBlocked: the gesture could not start.
	OutcomeBlocked
	// OutcomeCancelled: the gesture ended with no mutation.
	OutcomeCancelled
	// OutcomeConflict: the proposal overlaps a committed assignment.
	OutcomeConflict
	// OutcomeCommit: a commit should be issued to the updater.
	OutcomeCommit
	// OutcomeConfirmed: the remote update succeeded.
	OutcomeConfirmed
	// OutcomeFailed: the remote update failed; displayed state is
	// unchanged because nothing was applied optimistically.
	OutcomeFailed
)

// Outcome is the result of handling one event.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Commit  *Commit
}

// Commit is an accepted proposal ready to send to the update
// collaborator, identified by its tracker token.
type Commit struct {
	JobID   string
	Token   uint64
	Patch   job.Patch
	Confirm string // success confirmation naming the job and placement
}

// Controller drives the gesture state machine against the live job
// collection. It holds the only mutable gesture state in the system;
// everything it calls is pure.
type Controller struct {
	state   State
	tracker *Tracker
}

// NewController creates a controller in the idle state.
func NewController() *Controller {
	return &Controller{state: None{}, tracker: NewTracker()}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Tracker exposes the commit tracker for the embedding surface.
func (c *Controller) Tracker() *Tracker {
	return c.tracker
}

// Active returns true while a gesture is in progress.
func (c *Controller) Active() bool {
	_, idle := c.state.(None)
	return !idle
}

// Handle applies one event. The snapshot is the job collection current
// at the time of the call; conflict detection for a terminating event
// runs against it, not against whatever was current at gesture start.
func (c *Controller) Handle(ev Event, snapshot []*job.Job) Outcome {
	// A job with an unresolved commit cannot start a new gesture; the
	// prior update's outcome must be known first.
	switch e := ev.(type) {
	case DragStart:
		if e.Job != nil && c.tracker.InFlight(e.Job.ID) {
			return Outcome{Kind: OutcomeBlocked, Message: fmt.Sprintf("%q has an update in progress", e.Job.Title)}
		}
	case ResizeStart:
		if e.Job != nil && c.tracker.InFlight(e.Job.ID) {
			return Outcome{Kind: OutcomeBlocked, Message: fmt.Sprintf("%q has an update in progress", e.Job.Title)}
		}
		if e.Job != nil && !Resizable(e.Job) {
			return Outcome{Kind: OutcomeBlocked, Message: ErrNotResizable.Error()}
		}
	}

	wasActive := c.Active()
	next, candidate := Transition(c.state, ev)
	c.state = next

	if candidate == nil {
		if _, cancelled := ev.(Cancel); cancelled && wasActive {
			return Outcome{Kind: OutcomeCancelled, Message: "cancelled"}
		}
		return Outcome{Kind: OutcomeNone}
	}

	if !candidate.Valid() {
		return Outcome{Kind: OutcomeCancelled, Message: "no technician at the drop target"}
	}

	if obstruction := schedule.FirstConflict(snapshot, candidate.ResourceID, candidate.Start, candidate.ConflictEnd, candidate.Job.ID); obstruction != nil {
		if candidate.resize {
			return Outcome{Kind: OutcomeConflict, Message: "cannot extend - conflicts with another job"}
		}
		return Outcome{Kind: OutcomeConflict, Message: "technician already has a job scheduled at this time"}
	}

	return Outcome{
		Kind: OutcomeCommit,
		Commit: &Commit{
			JobID:   candidate.Job.ID,
			Token:   c.tracker.Begin(candidate.Job.ID),
			Patch:   candidate.Patch(),
			Confirm: confirmMessage(candidate),
		},
	}
}

// Resolve reports a commit's remote outcome back to the controller. The
// returned outcome carries the user-facing notice; a superseded token
// resolves to OutcomeNone and must stay silent.
func (c *Controller) Resolve(commit *Commit, err error) Outcome {
	if !c.tracker.Finish(commit.JobID, commit.Token) {
		return Outcome{Kind: OutcomeNone}
	}
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Message: fmt.Sprintf("update failed: %v", err)}
	}
	return Outcome{Kind: OutcomeConfirmed, Message: commit.Confirm}
}

func confirmMessage(c *Candidate) string {
	if c.resize {
		return fmt.Sprintf("%q now ends at %s", c.Job.Title, c.End.Format("15:04"))
	}
	return fmt.Sprintf("%q scheduled %s %s", c.Job.Title, c.Start.Format("Mon Jan 2"), c.Start.Format("15:04"))
}
