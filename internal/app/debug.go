package app

import (
	"fmt"
	"io"
	"sync"
	"time"

	"lapwatch/internal/keymap"
	"lapwatch/internal/stopwatch"
)

// DebugLogger traces dispatched actions. A nil *DebugLogger discards
// everything.
type DebugLogger struct {
	out io.Writer
	mu  sync.Mutex
}

func NewDebugLogger(out io.Writer) *DebugLogger {
	return &DebugLogger{out: out}
}

func (d *DebugLogger) LogAction(key byte, action keymap.Action, elapsed time.Duration, running bool) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	state := "paused"
	if running {
		state = "running"
	}
	fmt.Fprintf(d.out, "[%s] key %q -> %s (%s)\r\n", stopwatch.FormatDuration(elapsed), key, action, state)
}

func (d *DebugLogger) LogUnbound(key byte) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "key %q is not bound\r\n", key)
}

func (d *DebugLogger) LogDropped(elapsed time.Duration) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "[%s] lap dropped: rate limit\r\n", stopwatch.FormatDuration(elapsed))
}
