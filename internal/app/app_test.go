package app

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"lapwatch/internal/config"
	"lapwatch/internal/core"
	"lapwatch/internal/display"
	"lapwatch/internal/keymap"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	clock  *core.FakeClock
	screen *core.MockWriter
	log    *core.MockWriter
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	clock := core.NewFakeClock(epoch)
	screen := &core.MockWriter{}
	log := &core.MockWriter{}
	disp := display.New("lapwatch", false)
	disp.SetOutput(screen)

	a, err := New(cfg, Options{
		Clock:   clock,
		Display: disp,
		Debug:   NewDebugLogger(log),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &testApp{App: a, clock: clock, screen: screen, log: log}
}

func TestApp_KeyScenario(t *testing.T) {
	a := newTestApp(t, nil)
	sw := a.Stopwatch()

	a.Handle(' ')
	a.clock.Advance(1500 * time.Millisecond)
	a.Handle('l')
	a.clock.Advance(2250 * time.Millisecond)
	a.Handle('L')

	laps := slices.Collect(sw.Laps())
	if len(laps) != 2 {
		t.Fatalf("expected 2 laps, got %d", len(laps))
	}
	if laps[1].Total != 3750*time.Millisecond || laps[1].Split != 2250*time.Millisecond {
		t.Errorf("unexpected lap 2: %+v", laps[1])
	}
	if !strings.Contains(a.screen.String(), "Lap 02 | Total: 00:03.750 | Split: 00:02.250") {
		t.Errorf("expected lap list on screen, got %q", a.screen.String())
	}

	a.Handle('r')

	if sw.Elapsed() != 0 || sw.Running() || sw.LapCount() != 0 {
		t.Errorf("expected zeroed stopwatch after reset, got elapsed=%v running=%v laps=%d",
			sw.Elapsed(), sw.Running(), sw.LapCount())
	}
}

func TestApp_HandleReportsAction(t *testing.T) {
	a := newTestApp(t, nil)

	tests := []struct {
		key    byte
		want   keymap.Action
		wantOK bool
	}{
		{' ', keymap.Toggle, true},
		{'l', keymap.Lap, true},
		{'R', keymap.Reset, true},
		{'x', 0, false},
	}
	for _, tt := range tests {
		got, ok := a.Handle(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Handle(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	if !strings.Contains(a.log.String(), `key 'x' is not bound`) {
		t.Errorf("expected unbound key in debug log, got %q", a.log.String())
	}
}

func TestApp_ToggleUpdatesStatusLine(t *testing.T) {
	a := newTestApp(t, nil)

	a.Handle(' ')
	a.clock.Advance(65123 * time.Millisecond)
	a.Handle(' ')

	if !strings.HasSuffix(a.screen.String(), "01:05.123  [paused]") {
		t.Errorf("expected paused status line, got %q", a.screen.String())
	}
}

func TestApp_LapRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.LapLimit = config.LapLimit{PerSecond: 1, Burst: 2}
	a := newTestApp(t, cfg)

	for i := 0; i < 5; i++ {
		a.Handle('l')
	}
	if got := a.Stopwatch().LapCount(); got != 2 {
		t.Errorf("expected 2 laps within burst, got %d", got)
	}
	if !strings.Contains(a.log.String(), "lap dropped") {
		t.Errorf("expected dropped laps in debug log, got %q", a.log.String())
	}
	if !strings.Contains(a.screen.String(), "lap dropped: more than 1 laps per second") {
		t.Errorf("expected dropped lap notice on screen, got %q", a.screen.String())
	}

	a.clock.Advance(time.Second)
	a.Handle('l')
	if got := a.Stopwatch().LapCount(); got != 3 {
		t.Errorf("expected lap after refill, got %d laps", got)
	}
}

func TestApp_DefaultConfigRecordsEveryLap(t *testing.T) {
	a := newTestApp(t, nil)
	a.Handle(' ')

	for i := 0; i < 5; i++ {
		a.clock.Advance(20 * time.Millisecond)
		a.Handle('l')
	}

	if got := a.Stopwatch().LapCount(); got != 5 {
		t.Errorf("expected 5 laps with default config, got %d", got)
	}
	if strings.Contains(a.screen.String(), "dropped") {
		t.Errorf("expected no dropped laps, got %q", a.screen.String())
	}
}

func TestApp_LapRateLimitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.LapLimit = config.LapLimit{}
	a := newTestApp(t, cfg)

	for i := 0; i < 50; i++ {
		a.Handle('l')
	}
	if got := a.Stopwatch().LapCount(); got != 50 {
		t.Errorf("expected 50 laps, got %d", got)
	}
}

func TestApp_CustomKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string][]string{"lap": {"enter"}}
	a := newTestApp(t, cfg)

	a.Handle('\r')
	a.Handle('l')

	if got := a.Stopwatch().LapCount(); got != 1 {
		t.Errorf("expected 1 lap from enter only, got %d", got)
	}
}

func TestNew_InvalidKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string][]string{"rewind": {"w"}}

	_, err := New(cfg, Options{})
	if err == nil || !strings.Contains(err.Error(), "key bindings") {
		t.Errorf("expected key binding error, got %v", err)
	}
}

func TestApp_RunQuitKey(t *testing.T) {
	a := newTestApp(t, nil)
	keys := make(chan byte, 3)
	keys <- ' '
	keys <- 'l'
	keys <- 'q'

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background(), keys) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit key")
	}

	if a.Stopwatch().LapCount() != 1 {
		t.Errorf("expected 1 lap, got %d", a.Stopwatch().LapCount())
	}
	if !strings.HasPrefix(a.screen.String(), "\033[H\033[2Jlapwatch") {
		t.Errorf("expected initial redraw, got %q", a.screen.String())
	}
	if !strings.HasSuffix(a.screen.String(), "\r\n") {
		t.Error("expected status line to be finished on exit")
	}
}

func TestApp_RunClosedKeys(t *testing.T) {
	a := newTestApp(t, nil)
	keys := make(chan byte)
	close(keys)

	if err := a.Run(context.Background(), keys); err != nil {
		t.Errorf("Run returned error: %v", err)
	}
}

func TestApp_RunContextCancel(t *testing.T) {
	a := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, make(chan byte)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_RunRefreshes(t *testing.T) {
	cfg := config.Default()
	cfg.RefreshInterval = 5 * time.Millisecond
	a := newTestApp(t, cfg)
	a.Handle(' ')
	a.clock.Advance(2 * time.Second)
	a.screen.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx, make(chan byte)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if n := strings.Count(a.screen.String(), "00:02.000  [running]"); n < 2 {
		t.Errorf("expected repeated refreshes, got %d in %q", n, a.screen.String())
	}
}

func TestApp_Summary(t *testing.T) {
	a := newTestApp(t, nil)
	a.Handle(' ')
	a.clock.Advance(time.Second)
	a.Handle('l')
	a.clock.Advance(3 * time.Second)
	a.Handle('l')

	s := a.Summary()

	if s.Elapsed != 4*time.Second {
		t.Errorf("expected elapsed 4s, got %v", s.Elapsed)
	}
	if len(s.Laps) != 2 || s.Splits.Slowest != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
}
