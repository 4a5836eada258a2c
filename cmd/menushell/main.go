// Package main is the terminal host for menustorm menus.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/menustorm/internal/app"
	"github.com/dshills/menustorm/internal/input/source/tcellsrc"
	"github.com/dshills/menustorm/internal/renderer/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const frameInterval = time.Second / 60

func main() {
	os.Exit(run())
}

func run() int {
	opts, logFile := parseFlags()

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts.LogOutput = f
	} else {
		// The terminal is the display; stray log lines would corrupt it.
		opts.LogOutput = io.Discard
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	canvas, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := canvas.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer canvas.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Quit()
	}()

	err = loop(application, canvas)
	if serr := application.SaveBindings(); serr != nil {
		application.Logger().Error("%v", serr)
	}
	if err != nil && !errors.Is(err, app.ErrQuit) {
		canvas.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loop feeds terminal events to the application and renders at a fixed rate
// until the application quits or fails.
func loop(application *app.Application, canvas *term.Terminal) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := canvas.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	translator := tcellsrc.New()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-application.Done():
			return app.ErrQuit

		case ev, ok := <-events:
			if !ok {
				return app.ErrQuit
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				canvas.Screen().Sync()
				continue
			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlC {
					application.Quit()
					continue
				}
			}
			for _, in := range translator.Translate(ev) {
				if err := application.HandleInput(in); err != nil {
					return err
				}
			}

		case now := <-ticker.C:
			if err := application.Frame(now.Sub(last)); err != nil {
				return err
			}
			last = now
			canvas.Clear()
			application.Render(canvas)
			canvas.Show()
		}
	}
}

func parseFlags() (app.Options, string) {
	var opts app.Options
	var logFile string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "menustorm.toml", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "menustorm.toml", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write log lines to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "menushell - drive menustorm menus in a terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: menushell [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  menushell -c data/menustorm.toml\n")
		fmt.Fprintf(os.Stderr, "  menushell -c data/menustorm.toml -debug -log-file menus.log\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("menushell %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts, logFile
}
