package rules

import "time"

// timerKind identifies a scheduled side effect.
type timerKind int

const (
	timerGoldenCheck timerKind = iota
	timerPoisonCheck
	timerClockCheck
	timerCountdown
	timerRunEnded
)

type schedEntry struct {
	kind  timerKind
	at    time.Duration
	every time.Duration // zero for one-shot entries
}

// scheduler is an event queue on the session's simulated clock. It replaces
// host-runtime timers: the session polls it from the frame callback, so every
// spawn check, the countdown, and the delayed run-ended notification freeze
// with the simulation and are all cancelled together by Reset. Reset on run
// teardown is the resource-safety invariant that keeps a stale timer from
// mutating the next run's state.
type scheduler struct {
	now     time.Duration
	entries []schedEntry
}

// Schedule queues a one-shot entry delay from now.
func (sc *scheduler) Schedule(kind timerKind, delay time.Duration) {
	sc.entries = append(sc.entries, schedEntry{kind: kind, at: sc.now + delay})
}

// Repeat queues a repeating entry firing first after every, then on that
// interval.
func (sc *scheduler) Repeat(kind timerKind, every time.Duration) {
	sc.entries = append(sc.entries, schedEntry{kind: kind, at: sc.now + every, every: every})
}

// Cancel removes all entries of the given kind.
func (sc *scheduler) Cancel(kind timerKind) {
	kept := sc.entries[:0]
	for _, e := range sc.entries {
		if e.kind != kind {
			kept = append(kept, e)
		}
	}
	sc.entries = kept
}

// Reset drops every entry and rewinds the clock.
func (sc *scheduler) Reset() {
	sc.entries = nil
	sc.now = 0
}

// Advance moves the clock forward and returns the kinds that fired, in
// firing order. A repeating entry can fire more than once if dt spans
// multiple intervals.
func (sc *scheduler) Advance(dt time.Duration) []timerKind {
	sc.now += dt

	var fired []timerKind
	kept := sc.entries[:0]
	for _, e := range sc.entries {
		for e.at <= sc.now {
			fired = append(fired, e.kind)
			if e.every <= 0 {
				break
			}
			e.at += e.every
		}
		if e.every > 0 || e.at > sc.now {
			kept = append(kept, e)
		}
	}
	sc.entries = kept
	return fired
}
