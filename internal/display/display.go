// Package display renders the stopwatch to a terminal using ANSI escape
// sequences. Lines end in "\r\n" so output stays aligned in raw mode.
package display

import (
	"fmt"
	"io"
	"iter"
	"os"
	"sync"
	"time"

	"lapwatch/internal/stopwatch"
)

const (
	clearLine   = "\r\033[K"
	clearScreen = "\033[H\033[2J"
	newline     = "\r\n"
)

// Display owns the status line and the lap list. Quiet mode suppresses
// all output.
type Display struct {
	header string
	quiet  bool
	output io.Writer
	mu     sync.Mutex
}

func New(header string, quiet bool) *Display {
	return &Display{
		header: header,
		quiet:  quiet,
		output: os.Stderr,
	}
}

func (d *Display) SetOutput(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output = w
}

// Refresh rewrites the status line in place.
func (d *Display) Refresh(elapsed time.Duration, running bool) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	fmt.Fprintf(d.output, "%s%s  [%s]", clearLine, stopwatch.FormatDuration(elapsed), stateLabel(running))
	d.mu.Unlock()
}

// Redraw clears the screen and renders the header and the full lap list.
// The status line is left for the next Refresh.
func (d *Display) Redraw(laps iter.Seq[stopwatch.Lap]) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprint(d.output, clearScreen)
	if d.header != "" {
		fmt.Fprint(d.output, d.header+newline+newline)
	}
	n := 0
	for lap := range laps {
		if n == 0 {
			fmt.Fprint(d.output, "Laps"+newline)
		}
		fmt.Fprint(d.output, stopwatch.FormatLap(lap)+newline)
		n++
	}
	if n > 0 {
		fmt.Fprint(d.output, newline)
	}
}

// Finish ends the status line so later output starts on a fresh line.
func (d *Display) Finish() {
	if d.quiet {
		return
	}
	d.mu.Lock()
	fmt.Fprint(d.output, newline)
	d.mu.Unlock()
}

func (d *Display) Print(message string) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	fmt.Fprint(d.output, clearLine+message+newline)
	d.mu.Unlock()
}

func (d *Display) Printf(format string, args ...interface{}) {
	d.Print(fmt.Sprintf(format, args...))
}

func stateLabel(running bool) string {
	if running {
		return "running"
	}
	return "paused"
}
