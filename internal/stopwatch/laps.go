package stopwatch

import (
	"fmt"
	"iter"
	"time"
)

// Lap is one recorded split. Index is 1-based.
type Lap struct {
	Index int
	Total time.Duration
	Split time.Duration
}

// String renders the lap as a single lap list line.
func (l Lap) String() string {
	return FormatLap(l)
}

// Recorder keeps the ordered lap log.
type Recorder struct {
	laps []Lap
	last time.Duration
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a lap for the given elapsed time and returns it.
func (r *Recorder) Record(elapsed time.Duration) Lap {
	split := elapsed
	if len(r.laps) > 0 {
		split = elapsed - r.last
	}
	lap := Lap{
		Index: len(r.laps) + 1,
		Total: elapsed,
		Split: split,
	}
	r.laps = append(r.laps, lap)
	r.last = elapsed
	return lap
}

// Clear drops every lap. It must only be called together with
// Tracker.Reset so splits stay consistent with a zeroed tracker.
func (r *Recorder) Clear() {
	r.laps = nil
	r.last = 0
}

// Len returns the number of recorded laps.
func (r *Recorder) Len() int {
	return len(r.laps)
}

// All returns the laps in recorded order. The sequence can be ranged over
// any number of times and reflects the log at iteration time.
func (r *Recorder) All() iter.Seq[Lap] {
	return func(yield func(Lap) bool) {
		for _, lap := range r.laps {
			if !yield(lap) {
				return
			}
		}
	}
}

// FormatLap renders a lap as "Lap 01 | Total: 00:01.500 | Split: 00:01.500".
func FormatLap(l Lap) string {
	return fmt.Sprintf("Lap %02d | Total: %s | Split: %s",
		l.Index, FormatDuration(l.Total), FormatDuration(l.Split))
}
