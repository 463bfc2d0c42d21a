// Package report summarizes a finished stopwatch session.
package report

import (
	"iter"
	"time"

	"lapwatch/internal/stopwatch"
)

// Summary describes the session at exit.
type Summary struct {
	Elapsed time.Duration
	Laps    []stopwatch.Lap
	Splits  SplitStats
}

// SplitStats holds split statistics. Fastest and Slowest are lap indexes,
// zero when there are no laps.
type SplitStats struct {
	Fastest int
	Slowest int
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
}

// Compute builds a Summary. Pure function, no side effects.
func Compute(elapsed time.Duration, laps iter.Seq[stopwatch.Lap]) *Summary {
	s := &Summary{Elapsed: elapsed}

	var sum time.Duration
	for lap := range laps {
		s.Laps = append(s.Laps, lap)
		sum += lap.Split
		if len(s.Laps) == 1 || lap.Split < s.Splits.Min {
			s.Splits.Min = lap.Split
			s.Splits.Fastest = lap.Index
		}
		if len(s.Laps) == 1 || lap.Split > s.Splits.Max {
			s.Splits.Max = lap.Split
			s.Splits.Slowest = lap.Index
		}
	}

	if len(s.Laps) > 0 {
		s.Splits.Avg = sum / time.Duration(len(s.Laps))
	}
	return s
}
