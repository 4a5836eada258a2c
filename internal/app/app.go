package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/menustorm/internal/config"
	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/config/watcher"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input/action"
	"github.com/dshills/menustorm/internal/logging"
	"github.com/dshills/menustorm/internal/sched"
	"github.com/dshills/menustorm/internal/script"
	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/menu"
	"github.com/dshills/menustorm/internal/ui/smart"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. A missing file means defaults.
	ConfigPath string

	// FS reads every configured file. Defaults to the OS file system.
	FS loader.FileSystem

	// LogLevel overrides the configured level when non-empty.
	LogLevel string

	// Debug forces debug logging.
	Debug bool

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer

	// Scheduler runs scroll repeats. Defaults to a wall-clock scheduler.
	Scheduler sched.Scheduler

	// Origin maps layout coordinates to screen coordinates. The zero
	// value means identity.
	Origin geom.Matrix
}

// StateHook runs after the menus have been switched for a game state.
type StateHook func(from, to string) error

// Application owns the menu services. All methods except Quit, Done and
// Running must be called from the host's main loop goroutine.
type Application struct {
	opts Options
	cfg  *config.Config
	fsys loader.FileSystem
	log  *logging.Logger

	queue     *event.Queue
	observers *event.Observers
	scheduler sched.Scheduler
	scripts   *script.Engine
	actions   *action.Manager
	behaviors *control.Registry
	menus     *menu.Manager

	state string
	hooks map[string][]StateHook

	watcher  *watcher.Watcher
	reloadMu sync.Mutex
	reloads  map[string]struct{}

	metrics *Metrics

	quit      atomic.Bool
	done      chan struct{}
	quitOnce  sync.Once
	closeOnce sync.Once
}

// New loads the configuration and starts every service.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		fsys:      opts.FS,
		queue:     event.NewQueue(),
		observers: event.NewObservers(),
		scheduler: opts.Scheduler,
		hooks:     make(map[string][]StateHook),
		reloads:   make(map[string]struct{}),
		metrics:   NewMetrics(),
		done:      make(chan struct{}),
	}
	if app.fsys == nil {
		app.fsys = loader.DefaultFS()
	}
	if app.scheduler == nil {
		app.scheduler = sched.NewTimerScheduler()
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	cfg, err := config.Load(app.fsys, app.opts.ConfigPath)
	if err != nil {
		return initError("config", err)
	}
	cfg.Override(app.opts.LogLevel, app.opts.Debug)
	app.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	if app.opts.LogOutput != nil {
		logCfg.Output = app.opts.LogOutput
	}
	app.log = logging.New(logCfg)

	if err := app.initScripts(); err != nil {
		return initError("scripts", err)
	}

	app.actions = action.NewManager(action.WithLogger(app.log))
	if err := app.actions.LoadBindingsFile(app.fsys, cfg.Input.Bindings); err != nil {
		return initError("bindings", err)
	}

	app.behaviors = control.NewRegistry()
	smart.Register(app.behaviors, app.actions)

	menuOpts := []menu.Option{
		menu.WithLogger(app.log),
		menu.WithScripts(app.scripts),
		menu.WithBehaviors(app.behaviors),
		menu.WithGroupWorkers(cfg.Menu.Workers),
	}
	if app.opts.Origin != (geom.Matrix{}) {
		menuOpts = append(menuOpts, menu.WithOrigin(app.opts.Origin))
	}
	app.menus = menu.NewManager(app.actions, app.queue, app.scheduler, menuOpts...)
	if err := app.menus.LoadActionList(app.fsys, cfg.Menu.Actions); err != nil {
		return initError("menu actions", err)
	}
	for _, name := range cfg.GroupNames() {
		if err := app.menus.LoadGroup(app.fsys, name, cfg.Menu.Groups[name]); err != nil {
			return initError("menu group "+name, err)
		}
	}
	if cfg.Menu.StartGroup != "" {
		if err := app.menus.SetCurrentGroup(cfg.Menu.StartGroup); err != nil {
			return initError("menus", err)
		}
	}
	for _, tree := range cfg.Menu.StartTrees {
		if err := app.menus.ActivateTree("", tree); err != nil {
			return initError("menus", err)
		}
	}

	if cfg.Watch.Enabled {
		if err := app.startWatcher(); err != nil {
			return initError("watcher", err)
		}
	}

	app.log.Info("started: %s", app.menus)
	return nil
}

func (app *Application) initScripts() error {
	timeout, err := app.cfg.CallTimeout()
	if err != nil {
		return err
	}
	eng, err := script.NewEngine(
		script.WithLogger(app.log.WithComponent("script")),
		script.WithCallTimeout(timeout),
	)
	if err != nil {
		return err
	}
	app.scripts = eng
	eng.RegisterModule("ui", app.uiModule())
	for _, file := range app.cfg.Scripts.Files {
		if err := eng.DoFile(app.fsys, file); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config { return app.cfg }

// Menus returns the menu manager.
func (app *Application) Menus() *menu.Manager { return app.menus }

// Actions returns the action manager.
func (app *Application) Actions() *action.Manager { return app.actions }

// Scripts returns the script engine.
func (app *Application) Scripts() *script.Engine { return app.scripts }

// Logger returns the root logger.
func (app *Application) Logger() *logging.Logger { return app.log }

// Metrics returns the frame metrics.
func (app *Application) Metrics() *Metrics { return app.metrics }

// State returns the current game state name.
func (app *Application) State() string { return app.state }

// Subscribe registers fn for every dispatched menu event whose topic
// matches pattern.
func (app *Application) Subscribe(pattern string, fn event.Func, opts ...event.SubscriptionOption) event.Subscription {
	return app.observers.Subscribe(topicOf(pattern), fn, opts...)
}

// OnGameState registers fn to run when the game enters state name.
func (app *Application) OnGameState(name string, fn StateHook) {
	app.hooks[name] = append(app.hooks[name], fn)
}

// Post queues an outward event for the next frame.
func (app *Application) Post(e event.Event) {
	app.queue.Post(e)
}

// SaveBindings writes the binding document if anything was rebound.
func (app *Application) SaveBindings() error {
	if !app.actions.Dirty() {
		return nil
	}
	if err := app.actions.Save(app.fsys, app.cfg.Input.Bindings); err != nil {
		return NewOperationError("save", app.cfg.Input.Bindings, err)
	}
	return nil
}

// Quit asks the host to stop. Safe to call from any goroutine.
func (app *Application) Quit() {
	app.quitOnce.Do(func() {
		app.quit.Store(true)
		close(app.done)
	})
}

// Running reports whether Quit has not been called.
func (app *Application) Running() bool {
	return !app.quit.Load()
}

// Done is closed by Quit.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// Close stops the watcher, closes every tree and releases the script engine.
func (app *Application) Close() error {
	var err error
	app.closeOnce.Do(func() {
		if app.watcher != nil {
			err = app.watcher.Close()
		}
		if app.menus != nil {
			app.menus.ClearActiveTrees()
		}
		if app.scripts != nil {
			if cerr := app.scripts.Close(); err == nil {
				err = cerr
			}
		}
		if app.log != nil {
			app.log.Info("closed: %s", app.metrics.Snapshot())
		}
	})
	return err
}
