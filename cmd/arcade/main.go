// Package main is the windowed host for menustorm menus, built on ebiten.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/menustorm/internal/app"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input/source/ebitensrc"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Layouts are authored in terminal cells; one cell is cellW x cellH pixels.
const (
	cellW = 8
	cellH = 16
)

type game struct {
	app    *app.Application
	src    *ebitensrc.Source
	canvas *canvas
	width  int
	height int
}

func (g *game) Update() error {
	for _, ev := range g.src.Poll() {
		if err := g.app.HandleInput(ev); err != nil {
			return err
		}
	}
	err := g.app.Frame(time.Second / time.Duration(ebiten.TPS()))
	if errors.Is(err, app.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.dst = screen
	g.app.Render(g.canvas)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	opts.Origin = geom.Scale(cellW, cellH)

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	win := application.Config().Window
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)

	g := &game{
		app:    application,
		src:    ebitensrc.New(),
		canvas: &canvas{},
		width:  win.Width,
		height: win.Height,
	}
	err = ebiten.RunGame(g)
	if serr := application.SaveBindings(); serr != nil {
		application.Logger().Error("%v", serr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	application.Logger().Info("%s", application.Metrics().Snapshot())
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "menustorm.toml", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "menustorm.toml", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "arcade - drive menustorm menus in a window\n\n")
		fmt.Fprintf(os.Stderr, "Usage: arcade [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("arcade %s (%s, %s)\n", version, commit, date)
		os.Exit(0)
	}
	return opts
}
