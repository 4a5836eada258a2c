package app

import (
	"path/filepath"
	"sort"

	"github.com/dshills/menustorm/internal/config/watcher"
	"github.com/dshills/menustorm/internal/ui/menu"
)

func (app *Application) startWatcher() error {
	debounce, err := app.cfg.WatchDebounce()
	if err != nil {
		return err
	}
	w, err := watcher.New(
		watcher.WithDebounce(debounce),
		watcher.WithErrorHandler(func(err error) {
			app.log.Error("watch: %v", err)
		}),
	)
	if err != nil {
		return err
	}
	app.watcher = w

	for _, path := range app.reloadable() {
		if err := w.Watch(path); err != nil {
			return err
		}
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		app.RequestReload(ev.Path)
	})
	w.Start()
	app.log.Info("watching %d files", len(w.WatchedFiles()))
	return nil
}

// reloadable lists the files picked up again when they change.
func (app *Application) reloadable() []string {
	paths := []string{app.cfg.Input.Bindings, app.cfg.Menu.Actions}
	for _, name := range app.cfg.GroupNames() {
		paths = append(paths, app.cfg.Menu.Groups[name])
	}
	return paths
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// RequestReload marks path for reloading at the start of the next frame.
// Safe to call from any goroutine.
func (app *Application) RequestReload(path string) {
	app.reloadMu.Lock()
	app.reloads[absPath(path)] = struct{}{}
	app.reloadMu.Unlock()
}

func (app *Application) applyReloads() {
	app.reloadMu.Lock()
	if len(app.reloads) == 0 {
		app.reloadMu.Unlock()
		return
	}
	paths := make([]string, 0, len(app.reloads))
	for p := range app.reloads {
		paths = append(paths, p)
	}
	clear(app.reloads)
	app.reloadMu.Unlock()

	sort.Strings(paths)
	for _, p := range paths {
		if err := app.reload(p); err != nil {
			app.log.Error("%v", NewOperationError("reload", p, err))
		}
	}
}

// reload re-reads one configured file. A failed reload keeps the
// previous state.
func (app *Application) reload(abs string) error {
	if abs == absPath(app.cfg.Input.Bindings) {
		if app.actions.Dirty() {
			app.log.Warn("bindings changed on disk while unsaved rebinds exist; keeping in-memory bindings")
			return nil
		}
		return app.actions.LoadBindingsFile(app.fsys, app.cfg.Input.Bindings)
	}
	if abs == absPath(app.cfg.Menu.Actions) {
		return app.menus.LoadActionList(app.fsys, app.cfg.Menu.Actions)
	}
	for _, name := range app.cfg.GroupNames() {
		path := app.cfg.Menu.Groups[name]
		if abs == absPath(path) {
			return app.reloadGroup(name, path)
		}
	}
	app.log.Debug("no configured file for %s", abs)
	return nil
}

// reloadGroup replaces a group and reopens the trees of it that were active.
func (app *Application) reloadGroup(name, path string) error {
	var reopen []string
	for _, list := range [][]string{treeNames(app.menus.ActiveInterfaceTrees(), name), treeNames(app.menus.ActiveMenuTrees(), name)} {
		// Activation prepends, so reopen oldest first.
		for i := len(list) - 1; i >= 0; i-- {
			reopen = append(reopen, list[i])
		}
	}

	if err := app.menus.LoadGroup(app.fsys, name, path); err != nil {
		return err
	}
	for _, tree := range reopen {
		if err := app.menus.ActivateTree(name, tree); err != nil {
			app.log.Warn("reopen tree %q after reload: %v", tree, err)
		}
	}
	return nil
}

func treeNames(trees []*menu.Tree, group string) []string {
	var names []string
	for _, t := range trees {
		if t.Group() == group {
			names = append(names, t.Name())
		}
	}
	return names
}
