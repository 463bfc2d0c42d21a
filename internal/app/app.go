// Package app wires the stopwatch core to the terminal: one App owns the
// stopwatch, the key bindings, the lap guard and the display, and a
// single loop serializes key presses with display refreshes.
package app

import (
	"context"
	"fmt"
	"time"

	"lapwatch/internal/config"
	"lapwatch/internal/core"
	"lapwatch/internal/display"
	"lapwatch/internal/keymap"
	"lapwatch/internal/ratelimit"
	"lapwatch/internal/report"
	"lapwatch/internal/stopwatch"
)

// App is not safe for concurrent use; Run is its only driver.
type App struct {
	watch      *stopwatch.Stopwatch
	dispatcher *keymap.Dispatcher
	guard      *ratelimit.Guard
	display    *display.Display
	debug      *DebugLogger
	interval   time.Duration
	lapRate    float64
	quit       bool
}

// Options carries the collaborators that are not part of Config.
type Options struct {
	Clock   core.Clock
	Display *display.Display
	Debug   *DebugLogger
}

// New builds an App from a validated config.
func New(cfg *config.Config, opts Options) (*App, error) {
	keys, err := keymap.FromConfig(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = core.RealClock{}
	}
	if opts.Display == nil {
		opts.Display = display.New("", true)
	}

	a := &App{
		watch:    stopwatch.New(opts.Clock),
		guard:    ratelimit.NewGuard(cfg.LapLimit.PerSecond, cfg.LapLimit.Burst, opts.Clock),
		display:  opts.Display,
		debug:    opts.Debug,
		interval: cfg.RefreshInterval,
		lapRate:  cfg.LapLimit.PerSecond,
	}
	a.dispatcher = keymap.NewDispatcher(keys, map[keymap.Action]func(){
		keymap.Toggle: a.toggle,
		keymap.Reset:  a.reset,
		keymap.Lap:    a.lap,
		keymap.Quit:   func() { a.quit = true },
	})
	return a, nil
}

// Run redraws the display every refresh interval and handles keys until
// a quit key arrives, keys is closed or ctx is done.
func (a *App) Run(ctx context.Context, keys <-chan byte) error {
	if a.interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", a.interval)
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.display.Redraw(a.watch.Laps())
	a.refresh()
	defer a.display.Finish()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.refresh()
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			a.Handle(key)
			if a.quit {
				return nil
			}
		}
	}
}

// Handle dispatches a single key press.
func (a *App) Handle(key byte) (keymap.Action, bool) {
	action, ok := a.dispatcher.Dispatch(key)
	if !ok {
		a.debug.LogUnbound(key)
		return action, false
	}
	a.debug.LogAction(key, action, a.watch.Elapsed(), a.watch.Running())
	return action, true
}

// Summary reports the session so far.
func (a *App) Summary() *report.Summary {
	return report.Compute(a.watch.Elapsed(), a.watch.Laps())
}

// Stopwatch exposes the owned stopwatch for inspection.
func (a *App) Stopwatch() *stopwatch.Stopwatch {
	return a.watch
}

func (a *App) toggle() {
	a.watch.Toggle()
	a.refresh()
}

func (a *App) reset() {
	a.watch.Reset()
	a.display.Redraw(a.watch.Laps())
	a.refresh()
}

func (a *App) lap() {
	if !a.guard.Allow() {
		a.debug.LogDropped(a.watch.Elapsed())
		a.display.Printf("lap dropped: more than %g laps per second", a.lapRate)
		a.refresh()
		return
	}
	a.watch.Lap()
	a.display.Redraw(a.watch.Laps())
	a.refresh()
}

func (a *App) refresh() {
	a.display.Refresh(a.watch.Elapsed(), a.watch.Running())
}
