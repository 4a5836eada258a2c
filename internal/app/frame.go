package app

import (
	"time"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/event/topic"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/menu"
)

// maxDrainRounds bounds how often one frame re-drains events posted by
// the events it handles.
const maxDrainRounds = 16

func topicOf(pattern string) topic.Topic {
	return topic.Topic(pattern)
}

// HandleInput feeds one raw event to the menus.
func (app *Application) HandleInput(ev input.Event) error {
	if app.menus.Blocked() {
		app.metrics.RecordInputBlocked()
	}
	timer := StartTimer()
	err := app.menus.HandleEvent(ev)
	app.metrics.RecordInput(timer.Elapsed())
	return err
}

// Frame applies pending reloads, dispatches queued menu events and
// advances the menus by dt. It returns ErrQuit once a quit was requested.
func (app *Application) Frame(dt time.Duration) error {
	timer := StartTimer()
	defer func() { app.metrics.RecordFrame(timer.Elapsed()) }()

	app.applyReloads()

	if err := app.drain(); err != nil {
		return err
	}
	app.menus.Update(dt)
	app.menus.Transform()

	if !app.Running() {
		return ErrQuit
	}
	return nil
}

func (app *Application) drain() error {
	for round := 0; round < maxDrainRounds; round++ {
		events := app.queue.Drain()
		if len(events) == 0 {
			return nil
		}
		for _, e := range events {
			if err := app.dispatch(e); err != nil {
				return err
			}
		}
	}
	if n := app.queue.Len(); n > 0 {
		app.log.Warn("%d menu events deferred to the next frame", n)
	}
	return nil
}

func (app *Application) dispatch(e event.Event) error {
	timer := StartTimer()
	defer func() { app.metrics.RecordEvent(timer.Elapsed()) }()

	app.log.Debug("event %s", e)
	app.observers.Notify(e)

	switch e.Type {
	case event.TypeGameStateChange:
		return app.changeState(e.Target)
	case event.TypeQuit:
		app.Quit()
		return nil
	}
	return app.menus.HandleMenuEvent(e)
}

// changeState switches the menus to the trees configured for name and
// runs the registered hooks.
func (app *Application) changeState(name string) error {
	st, configured := app.cfg.State(name)
	hooks := app.hooks[name]
	hasScript := app.scripts.HasFunction("on_game_state")
	if !configured && len(hooks) == 0 && !hasScript {
		app.log.Warn("%v", NewOperationError("state", name, ErrUnknownState))
		return nil
	}

	if configured {
		app.menus.ClearActiveTrees()
		if st.Group != "" {
			if err := app.menus.SetCurrentGroup(st.Group); err != nil {
				return NewOperationError("state", name, err)
			}
		}
		for _, tree := range st.Trees {
			if err := app.menus.ActivateTree("", tree); err != nil {
				return NewOperationError("state", name, err)
			}
		}
	}

	prev := app.state
	app.state = name
	app.log.Info("game state %q -> %q", prev, name)

	for _, fn := range hooks {
		if err := fn(prev, name); err != nil {
			app.log.Error("state hook for %q: %v", name, err)
		}
	}
	if hasScript {
		if _, err := app.scripts.Call("on_game_state", prev, name); err != nil {
			app.log.Error("on_game_state: %v", err)
		}
	}
	return nil
}

// Render draws the active menus.
func (app *Application) Render(canvas menu.Canvas) {
	timer := StartTimer()
	app.menus.Render(canvas)
	app.metrics.RecordRender(timer.Elapsed())
}
