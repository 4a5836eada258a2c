package menu

import (
	"fmt"
	"time"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/control"
)

// TreeConfig declares a tree in a group file.
type TreeConfig struct {
	Name      string `toml:"name"`
	Root      string `toml:"root"`
	Default   string `toml:"default"`
	Interface bool   `toml:"interface"`
}

// Tree is one UI flow: a root menu, a default menu shown on open, and the
// history of menus visited since.
type Tree struct {
	name    string
	root    string
	def     string
	iface   bool
	group   string
	lookup  func(name string) (*Menu, bool)
	history []*Menu
	leaving []*Menu
	active  bool
}

// NewTree validates cfg. Root and default fall back to each other. lookup
// resolves menu names within the owning group.
func NewTree(group string, cfg TreeConfig, lookup func(string) (*Menu, bool)) (*Tree, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: tree without name", ErrMalformedConfig)
	}
	t := &Tree{
		name:   cfg.Name,
		root:   cfg.Root,
		def:    cfg.Default,
		iface:  cfg.Interface,
		group:  group,
		lookup: lookup,
	}
	if t.root == "" {
		t.root = t.def
	}
	if t.def == "" {
		t.def = t.root
	}
	if t.root == "" {
		return nil, fmt.Errorf("%w: tree %q names no menu", ErrMalformedConfig, cfg.Name)
	}
	for _, name := range []string{t.root, t.def} {
		if _, ok := lookup(name); !ok {
			return nil, critical.New("Menu Tree", ErrMenuNotFound, "tree %q references unknown menu %q", cfg.Name, name)
		}
	}
	return t, nil
}

// Name returns the tree name.
func (t *Tree) Name() string { return t.name }

// Group returns the owning group name.
func (t *Tree) Group() string { return t.group }

// IsInterface reports whether the tree is a non-modal overlay.
func (t *Tree) IsInterface() bool { return t.iface }

// IsActive reports whether the tree is open.
func (t *Tree) IsActive() bool { return t.active }

// Root returns the root menu name.
func (t *Tree) Root() string { return t.root }

// CurrentMenu returns the menu on top of the history, or nil when closed.
func (t *Tree) CurrentMenu() *Menu {
	if len(t.history) == 0 {
		return nil
	}
	return t.history[len(t.history)-1]
}

// Depth returns the history length.
func (t *Tree) Depth() int { return len(t.history) }

// Init opens the tree on its default menu. The root stays underneath so
// Back returns to it. Focus goes to the first control unless the mouse was
// the last device used.
func (t *Tree) Init(devices control.Devices) error {
	root, _ := t.lookup(t.root)
	t.history = append(t.history[:0], root)
	if t.def != t.root {
		def, _ := t.lookup(t.def)
		t.history = append(t.history, def)
	}
	t.active = true

	m := t.CurrentMenu()
	t.dropLeaving(m)
	if err := m.TransitionIn(); err != nil {
		return err
	}
	if devices == nil || devices.LastDevice() != input.DeviceMouse {
		m.ActivateFirstInactiveControl()
	}
	return nil
}

// ToMenu shows the named menu. With replace set the current menu is
// swapped out instead of kept in the history, even at the root.
func (t *Tree) ToMenu(name string, replace bool) error {
	next, ok := t.lookup(name)
	if !ok {
		return critical.New("Menu Tree", ErrMenuNotFound, "tree %q: unknown menu %q", t.name, name)
	}
	if cur := t.CurrentMenu(); cur != nil {
		if cur == next {
			return nil
		}
		if err := t.leave(cur); err != nil {
			return err
		}
		if replace {
			t.history = t.history[:len(t.history)-1]
		}
	}
	t.history = append(t.history, next)
	t.dropLeaving(next)
	if err := next.TransitionIn(); err != nil {
		return err
	}
	next.ActivateFirstInactiveControl()
	return nil
}

// Back returns to the previous menu. It reports false at the root, where
// the caller is expected to close the tree.
func (t *Tree) Back() (bool, error) {
	if len(t.history) <= 1 {
		return false, nil
	}
	if err := t.leave(t.CurrentMenu()); err != nil {
		return true, err
	}
	t.history = t.history[:len(t.history)-1]
	prev := t.CurrentMenu()
	t.dropLeaving(prev)
	if err := prev.TransitionIn(); err != nil {
		return true, err
	}
	prev.ActivateFirstInactiveControl()
	return true, nil
}

// Close transitions the current menu out and empties the history.
func (t *Tree) Close() error {
	if !t.active {
		return nil
	}
	t.active = false
	if cur := t.CurrentMenu(); cur != nil {
		if err := t.leave(cur); err != nil {
			return err
		}
	}
	t.history = t.history[:0]
	return nil
}

func (t *Tree) leave(m *Menu) error {
	if err := m.TransitionOut(); err != nil {
		return err
	}
	if m.Busy() {
		t.leaving = append(t.leaving, m)
	}
	return nil
}

func (t *Tree) dropLeaving(m *Menu) {
	kept := t.leaving[:0]
	for _, l := range t.leaving {
		if l != m {
			kept = append(kept, l)
		}
	}
	t.leaving = kept
}

// Busy reports whether any menu of the tree is transitioning.
func (t *Tree) Busy() bool {
	if m := t.CurrentMenu(); m != nil && m.Busy() {
		return true
	}
	return len(t.leaving) > 0
}

// Done reports whether a closed tree has finished its transition out.
func (t *Tree) Done() bool {
	return !t.active && len(t.leaving) == 0
}

// Update advances the current menu and any menus still leaving.
func (t *Tree) Update(dt time.Duration) {
	if m := t.CurrentMenu(); m != nil {
		m.Update(dt)
	}
	kept := t.leaving[:0]
	for _, m := range t.leaving {
		m.Update(dt)
		if m.Busy() {
			kept = append(kept, m)
		}
	}
	t.leaving = kept
}

// Transform places the tree's visible menus under parent.
func (t *Tree) Transform(parent geom.Matrix) {
	for _, m := range t.leaving {
		m.Transform(parent)
	}
	if m := t.CurrentMenu(); m != nil {
		m.Transform(parent)
	}
}

// Render draws menus leaving first, then the current menu.
func (t *Tree) Render(canvas Canvas) {
	for _, m := range t.leaving {
		m.Render(canvas)
	}
	if m := t.CurrentMenu(); m != nil {
		m.Render(canvas)
	}
}
