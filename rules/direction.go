package rules

// DirectionTracker holds the committed and pending movement directions.
//
// Direction changes are two-phase: input sets the pending direction, the
// session commits it exactly once per movement step. Rejecting reversals
// against the committed direction (rather than the pending one) means a rapid
// double key press inside a single step can never fold the snake back onto
// its own neck.
type DirectionTracker struct {
	committed Direction
	pending   Direction
}

// NewDirectionTracker returns a tracker with both directions set to Right.
func NewDirectionTracker() *DirectionTracker {
	return &DirectionTracker{committed: Right, pending: Right}
}

// Set requests a new direction. Requests that would reverse the committed
// direction are discarded. Returns true if the request was accepted.
func (t *DirectionTracker) Set(d Direction) bool {
	if d == t.committed.Opposite() {
		return false
	}
	t.pending = d
	return true
}

// Commit promotes the pending direction and returns it. Called once per
// movement step, before the next head position is computed.
func (t *DirectionTracker) Commit() Direction {
	t.committed = t.pending
	return t.committed
}

// Committed returns the direction of the last committed step.
func (t *DirectionTracker) Committed() Direction { return t.committed }

// Reset restores the default heading.
func (t *DirectionTracker) Reset() {
	t.committed = Right
	t.pending = Right
}
