package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"lapwatch/internal/app"
	"lapwatch/internal/config"
	"lapwatch/internal/core"
	"lapwatch/internal/display"
	"lapwatch/internal/report"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

const header = "lapwatch   [space] start/pause   [r] reset   [l] lap   [q] quit"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file")
	interval := flag.Duration("interval", 0, "display refresh interval (default 33ms)")
	output := flag.String("output", "", "summary format on exit: text, json")
	quiet := flag.Bool("quiet", false, "suppress the live display")
	verbose := flag.Bool("verbose", false, "log every key press to stderr")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return ExitError
		}
	}

	// CLI flags override config file values
	if *interval != 0 {
		cfg.RefreshInterval = *interval
	}
	if *output != "" {
		cfg.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		return ExitError
	}

	var debugLogger *app.DebugLogger
	if *verbose {
		debugLogger = app.NewDebugLogger(os.Stderr)
	}

	disp := display.New(header, *quiet)
	watch, err := app.New(cfg, app.Options{
		Clock:   core.RealClock{},
		Display: disp,
		Debug:   debugLogger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	restore, err := rawInput(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	runCtx, cancel := context.WithCancel(ctx)
	runErr := watch.Run(runCtx, readKeys(runCtx, os.Stdin))
	cancel()
	restore()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		return ExitError
	}

	summary := watch.Summary()
	if cfg.Output == config.OutputJSON {
		if err := report.FormatJSON(os.Stdout, summary); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return ExitError
		}
	} else {
		report.FormatText(os.Stdout, summary)
	}
	return ExitSuccess
}

// rawInput switches a terminal to raw mode so single key presses arrive
// without Enter. Non-terminal input is left untouched.
func rawInput(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

// readKeys forwards input bytes until EOF, a read error or ctx is done,
// then closes the channel. A goroutine blocked in Read only returns once
// the next byte or EOF arrives.
func readKeys(ctx context.Context, r io.Reader) <-chan byte {
	keys := make(chan byte)
	go func() {
		defer close(keys)
		br := bufio.NewReader(r)
		for {
			b, err := br.ReadByte()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					fmt.Fprintf(os.Stderr, "\r\nreading input: %v\r\n", err)
				}
				return
			}
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}
