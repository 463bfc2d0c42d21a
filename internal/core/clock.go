// Package core holds the small shared primitives of lapwatch: the clock
// abstraction and test helpers.
package core

import "time"

// Clock provides monotonic time readings that can be mocked for testing.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock uses the standard time package. Readings carry the monotonic
// component, so Since is immune to wall-clock adjustments.
type RealClock struct{}

func (RealClock) Now() time.Time                   { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// FakeClock is a test clock that can be manually advanced.
type FakeClock struct {
	current time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

func (f *FakeClock) Now() time.Time                   { return f.current }
func (f *FakeClock) Since(t time.Time) time.Duration { return f.current.Sub(t) }
func (f *FakeClock) Advance(d time.Duration)         { f.current = f.current.Add(d) }

// Set moves the clock to t, which may be in the past.
func (f *FakeClock) Set(t time.Time) { f.current = t }
