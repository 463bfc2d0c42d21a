// Package stopwatch implements the timing core: an elapsed-time tracker
// with running/paused states, a lap recorder and the MM:SS.mmm formatter.
//
// None of the types here are safe for concurrent use. Callers serialize
// access, typically from a single event loop.
package stopwatch

import (
	"time"

	"lapwatch/internal/core"
)

// Tracker accumulates the time spent in the running state.
type Tracker struct {
	clock       core.Clock
	running     bool
	accumulated time.Duration
	startedAt   time.Time // only meaningful while running
}

// NewTracker creates a stopped Tracker with zero elapsed time.
func NewTracker(clock core.Clock) *Tracker {
	return &Tracker{clock: clock}
}

// Start begins a running interval. It is a no-op if already running.
func (t *Tracker) Start() {
	if t.running {
		return
	}
	t.startedAt = t.clock.Now()
	t.running = true
}

// Pause folds the current running interval into the accumulated total.
// It is a no-op if already stopped.
func (t *Tracker) Pause() {
	if !t.running {
		return
	}
	t.accumulated += t.sinceStart()
	t.running = false
}

// Toggle pauses a running tracker and starts a stopped one.
func (t *Tracker) Toggle() {
	if t.running {
		t.Pause()
	} else {
		t.Start()
	}
}

// Reset stops the tracker and zeroes the accumulated time.
func (t *Tracker) Reset() {
	t.running = false
	t.accumulated = 0
	t.startedAt = time.Time{}
}

// Elapsed returns the total running time since the last reset. It never
// returns a negative duration and does not change any state.
func (t *Tracker) Elapsed() time.Duration {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + t.sinceStart()
}

// Running reports whether the tracker is in the running state.
func (t *Tracker) Running() bool {
	return t.running
}

// sinceStart clamps clock regressions to zero.
func (t *Tracker) sinceStart() time.Duration {
	return max(0, t.clock.Since(t.startedAt))
}
