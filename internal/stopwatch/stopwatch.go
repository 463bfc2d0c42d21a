package stopwatch

import (
	"iter"
	"time"

	"lapwatch/internal/core"
)

// Stopwatch pairs a Tracker with a Recorder so that a reset always clears
// both.
type Stopwatch struct {
	tracker  *Tracker
	recorder *Recorder
}

func New(clock core.Clock) *Stopwatch {
	return &Stopwatch{
		tracker:  NewTracker(clock),
		recorder: NewRecorder(),
	}
}

func (s *Stopwatch) Toggle()                 { s.tracker.Toggle() }
func (s *Stopwatch) Elapsed() time.Duration { return s.tracker.Elapsed() }
func (s *Stopwatch) Running() bool          { return s.tracker.Running() }
func (s *Stopwatch) Laps() iter.Seq[Lap]    { return s.recorder.All() }
func (s *Stopwatch) LapCount() int          { return s.recorder.Len() }

// Lap records the current elapsed time.
func (s *Stopwatch) Lap() Lap {
	return s.recorder.Record(s.tracker.Elapsed())
}

// Reset zeroes the tracker and clears the lap log.
func (s *Stopwatch) Reset() {
	s.tracker.Reset()
	s.recorder.Clear()
}
