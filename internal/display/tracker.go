package display

import "context"

// Ticket identifies one issued request of a Tracker.
type Ticket uint64

// Tracker owns the single in-flight request slot of one component.
//
// Only the most recently issued request may commit. Begin and Cancel bump the
// generation, so results of superseded requests are dropped by Commit.
// A Tracker has one writer (the UI loop or the request goroutine) and is
// not safe for concurrent use.
type Tracker struct {
	gen    uint64
	cancel context.CancelFunc
	state  State
}

// NewTracker returns a tracker in the loading state, which is where every
// component starts before its first fetch completes.
func NewTracker() *Tracker {
	return &Tracker{state: LoadingState()}
}

// Begin issues a new request. It cancels the context of the previous one and
// moves the component to Loading.
func (t *Tracker) Begin(parent context.Context) (Ticket, context.Context) {
	t.release()
	t.gen++
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	t.state = LoadingState()
	return Ticket(t.gen), ctx
}

// Commit stores s if ticket is still current and reports whether it did.
func (t *Tracker) Commit(ticket Ticket, s State) bool {
	if uint64(ticket) != t.gen {
		return false
	}
	t.release()
	t.state = s
	return true
}

// Cancel drops interest in the in-flight request (unmount, endpoint change).
// The current state is kept; any later Commit for older tickets is ignored.
func (t *Tracker) Cancel() {
	t.release()
	t.gen++
}

// Current reports whether ticket belongs to the latest request.
func (t *Tracker) Current(ticket Ticket) bool {
	return uint64(ticket) == t.gen
}

// State returns the component's single current state.
func (t *Tracker) State() State {
	return t.state
}

func (t *Tracker) release() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
