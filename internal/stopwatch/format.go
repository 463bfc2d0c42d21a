package stopwatch

import (
	"fmt"
	"math"
	"time"
)

// Format renders seconds as MM:SS.mmm. Negative (and NaN) input renders as
// zero, fractions are truncated to whole milliseconds, and minutes are
// zero-padded to at least two digits. Values beyond the int64 millisecond
// range, including +Inf, saturate instead of wrapping.
func Format(seconds float64) string {
	if !(seconds > 0) {
		return formatMillis(0)
	}
	// The small bias absorbs binary representation error, e.g. 3599.999.
	ms := math.Floor(seconds*1000 + 1e-6)
	if ms >= math.MaxInt64 {
		return formatMillis(math.MaxInt64)
	}
	return formatMillis(int64(ms))
}

// FormatDuration is Format for a time.Duration.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return formatMillis(d.Milliseconds())
}

func formatMillis(ms int64) string {
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
