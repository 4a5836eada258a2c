package menu

import (
	"fmt"
	"time"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/logging"
	"github.com/dshills/menustorm/internal/sched"
	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/scroll"
)

// Actions resolves raw input to logical actions. *action.Manager
// satisfies it.
type Actions interface {
	WasAction(ev input.Event, action string) input.PressState
	Track(ev input.Event)
	EnableAction(enabled bool)
	ActionEnabled() bool
	LastDevice() input.Device
	Unbound(actions []string) []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l.WithComponent("menu")
		}
	}
}

// WithScripts sets the script host handed to controls.
func WithScripts(s control.Scripts) Option {
	return func(m *Manager) { m.scripts = s }
}

// WithBehaviors sets the smart behavior registry handed to controls.
func WithBehaviors(r *control.Registry) Option {
	return func(m *Manager) { m.behaviors = r }
}

// WithGroupWorkers bounds concurrent layout decoding per group load.
func WithGroupWorkers(n int) Option {
	return func(m *Manager) { m.workers = n }
}

// WithOrigin sets the matrix menus are placed under by Transform.
func WithOrigin(o geom.Matrix) Option {
	return func(m *Manager) { m.origin = o }
}

// cascadeStep pairs a logical action name with the event it produces.
type cascadeStep struct {
	name string
	typ  event.Type
}

// Manager owns the loaded groups and routes input to the active trees.
// It is not safe for concurrent use; only the scroll timer runs off the
// main thread, and it only posts to the event queue.
type Manager struct {
	actions   Actions
	events    event.Poster
	scheduler sched.Scheduler
	scripts   control.Scripts
	behaviors *control.Registry
	log       *logging.Logger
	workers   int
	origin    geom.Matrix

	list    ActionList
	scroll  scroll.Param
	cascade []cascadeStep

	groups  map[string]*Group
	current string

	// Newest first.
	menuTrees  []*Tree
	ifaceTrees []*Tree
	closing    []*Tree

	scrollTask sched.Task
	scrollDir  event.Type
	// Controller driving the repeat, or -1.
	scrollPad int

	blocked bool
	// Action state to restore when the block lifts.
	resume bool
}

// NewManager creates a manager with the default action list.
func NewManager(actions Actions, events event.Poster, scheduler sched.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		actions:   actions,
		events:    events,
		scheduler: scheduler,
		log:       logging.Nop(),
		origin:    geom.Identity(),
		groups:    make(map[string]*Group),
		scrollPad: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.applyList(DefaultActionList(), scroll.Default())
	return m
}

func (m *Manager) applyList(l ActionList, p scroll.Param) {
	m.list = l
	m.scroll = p
	a := l.Actions
	m.cascade = []cascadeStep{
		{a.Select, event.TypeSelect},
		{a.Back, event.TypeBack},
		{a.Up, event.TypeUp},
		{a.Down, event.TypeDown},
		{a.Left, event.TypeLeft},
		{a.Right, event.TypeRight},
		{a.TabLeft, event.TypeTabLeft},
		{a.TabRight, event.TypeTabRight},
	}
}

// LoadActionList reads the action-list file. Names without a binding are
// logged and otherwise tolerated.
func (m *Manager) LoadActionList(fsys loader.FileSystem, path string) error {
	l, err := ReadActionList(fsys, path)
	if err != nil {
		return err
	}
	return m.SetActionList(l)
}

// SetActionList installs an action list.
func (m *Manager) SetActionList(l ActionList) error {
	p, err := l.ScrollParam()
	if err != nil {
		return critical.New("Menu Actions", ErrMalformedConfig, "%v", err)
	}
	m.applyList(l, p)
	if missing := m.actions.Unbound(l.Actions.All()); len(missing) > 0 {
		m.log.Warn("menu actions without bindings: %v", missing)
	}
	m.log.Debug("action list loaded, default tree %q, scroll %s", l.DefaultTree, p)
	return nil
}

// ActionList returns the installed action list.
func (m *Manager) ActionList() ActionList { return m.list }

func (m *Manager) env() control.Env {
	return control.Env{
		Events:    m.events,
		Scripts:   m.scripts,
		Devices:   m.actions,
		Behaviors: m.behaviors,
		Log:       m.log,
	}
}

// LoadGroup loads a group file under name. A group already loaded under
// that name is replaced after its trees are closed.
func (m *Manager) LoadGroup(fsys loader.FileSystem, name, path string) error {
	start := time.Now()
	g, err := LoadGroup(fsys, name, path, m.env(), m.workers)
	if err != nil {
		return err
	}
	if old, ok := m.groups[name]; ok {
		m.dropGroupTrees(old)
	}
	m.groups[name] = g
	if m.current == "" {
		m.current = name
	}
	m.log.Info("loaded group %q: %d menus, %d trees in %s", name, len(g.menus), len(g.trees), time.Since(start))
	return nil
}

// UnloadGroup closes the group's trees and forgets it.
func (m *Manager) UnloadGroup(name string) error {
	g, ok := m.groups[name]
	if !ok {
		return critical.New("Menu Group", ErrGroupNotFound, "group %q is not loaded", name)
	}
	m.dropGroupTrees(g)
	delete(m.groups, name)
	if m.current == name {
		m.current = ""
	}
	return nil
}

func (m *Manager) dropGroupTrees(g *Group) {
	keep := func(list []*Tree) []*Tree {
		out := list[:0]
		for _, t := range list {
			if t.Group() == g.name {
				if err := t.Close(); err != nil {
					m.log.Error("close tree %q: %v", t.Name(), err)
				}
				continue
			}
			out = append(out, t)
		}
		return out
	}
	m.menuTrees = keep(m.menuTrees)
	m.ifaceTrees = keep(m.ifaceTrees)
	m.closing = keep(m.closing)
	m.cancelScroll()
}

// SetCurrentGroup selects the group used when a call names none.
func (m *Manager) SetCurrentGroup(name string) error {
	if _, ok := m.groups[name]; !ok {
		return critical.New("Menu Group", ErrGroupNotFound, "group %q is not loaded", name)
	}
	m.current = name
	return nil
}

// CurrentGroup returns the current group name.
func (m *Manager) CurrentGroup() string { return m.current }

// Group returns a loaded group. An empty name means the current group.
func (m *Manager) Group(name string) (*Group, error) {
	if name == "" {
		name = m.current
	}
	g, ok := m.groups[name]
	if !ok {
		return nil, critical.New("Menu Group", ErrGroupNotFound, "group %q is not loaded", name)
	}
	return g, nil
}

// GetMenu returns a menu of a loaded group.
func (m *Manager) GetMenu(group, name string) (*Menu, error) {
	g, err := m.Group(group)
	if err != nil {
		return nil, err
	}
	mn, ok := g.Menu(name)
	if !ok {
		return nil, critical.New("Menu", ErrMenuNotFound, "group %q has no menu %q", g.name, name)
	}
	return mn, nil
}

// GetTree returns a tree of a loaded group.
func (m *Manager) GetTree(group, name string) (*Tree, error) {
	g, err := m.Group(group)
	if err != nil {
		return nil, err
	}
	t, ok := g.Tree(name)
	if !ok {
		return nil, critical.New("Menu Tree", ErrTreeNotFound, "group %q has no tree %q", g.name, name)
	}
	return t, nil
}

// GetActiveMenu returns the current menu of an active tree.
func (m *Manager) GetActiveMenu(group, tree string) (*Menu, error) {
	t, err := m.GetTree(group, tree)
	if err != nil {
		return nil, err
	}
	mn := t.CurrentMenu()
	if !t.IsActive() || mn == nil {
		return nil, critical.New("Menu Tree", ErrTreeNotActive, "tree %q has no active menu", tree)
	}
	return mn, nil
}

// ActivateTree opens a tree and puts it at the front of its list.
func (m *Manager) ActivateTree(group, name string) error {
	t, err := m.GetTree(group, name)
	if err != nil {
		return err
	}
	if t.IsActive() || m.listed(t) {
		return critical.New("Menu Tree", ErrTreeAlreadyActive, "tree %q is already active", name)
	}
	m.closing = remove(m.closing, t)
	if t.IsInterface() {
		m.ifaceTrees = append([]*Tree{t}, m.ifaceTrees...)
	} else {
		m.cancelScroll()
		m.menuTrees = append([]*Tree{t}, m.menuTrees...)
	}
	m.log.Debug("activate tree %q", name)
	return t.Init(m.actions)
}

// DeactivateTree closes an active tree. Its menus finish transitioning
// out before it stops rendering.
func (m *Manager) DeactivateTree(group, name string) error {
	t, err := m.GetTree(group, name)
	if err != nil {
		return err
	}
	if !m.listed(t) {
		return critical.New("Menu Tree", ErrTreeNotActive, "tree %q is not active", name)
	}
	m.close(t)
	return nil
}

func (m *Manager) close(t *Tree) {
	if t == m.inputTree() {
		m.cancelScroll()
	}
	m.menuTrees = remove(m.menuTrees, t)
	m.ifaceTrees = remove(m.ifaceTrees, t)
	if err := t.Close(); err != nil {
		m.log.Error("close tree %q: %v", t.Name(), err)
	}
	if !t.Done() {
		m.closing = append(m.closing, t)
	}
	m.log.Debug("deactivate tree %q", t.Name())
}

// ClearActiveTrees closes every active tree and cancels any scroll repeat.
func (m *Manager) ClearActiveTrees() {
	m.cancelScroll()
	for _, t := range append(append([]*Tree(nil), m.menuTrees...), m.ifaceTrees...) {
		m.close(t)
	}
	m.menuTrees = nil
	m.ifaceTrees = nil
}

func (m *Manager) listed(t *Tree) bool {
	for _, l := range [][]*Tree{m.menuTrees, m.ifaceTrees} {
		for _, x := range l {
			if x == t {
				return true
			}
		}
	}
	return false
}

func remove(list []*Tree, t *Tree) []*Tree {
	out := list[:0]
	for _, x := range list {
		if x != t {
			out = append(out, x)
		}
	}
	return out
}

// IsTreeActive reports whether the named tree is open.
func (m *Manager) IsTreeActive(group, name string) bool {
	g, err := m.Group(group)
	if err != nil {
		return false
	}
	t, ok := g.Tree(name)
	return ok && m.listed(t)
}

// IsMenuActive reports whether the named menu is current in an open tree.
func (m *Manager) IsMenuActive(group, name string) bool {
	mn, err := m.GetMenu(group, name)
	if err != nil {
		return false
	}
	for _, l := range [][]*Tree{m.menuTrees, m.ifaceTrees} {
		for _, t := range l {
			if t.CurrentMenu() == mn {
				return true
			}
		}
	}
	return false
}

// IsMenuTreeActive reports whether a modal tree is open.
func (m *Manager) IsMenuTreeActive() bool { return len(m.menuTrees) > 0 }

// IsInterfaceActive reports whether an interface tree is open.
func (m *Manager) IsInterfaceActive() bool { return len(m.ifaceTrees) > 0 }

// ActiveMenuTrees returns the open modal trees, newest first.
func (m *Manager) ActiveMenuTrees() []*Tree { return append([]*Tree(nil), m.menuTrees...) }

// ActiveInterfaceTrees returns the open interface trees, newest first.
func (m *Manager) ActiveInterfaceTrees() []*Tree { return append([]*Tree(nil), m.ifaceTrees...) }

// inputTree is the one tree that takes navigation: the newest modal tree,
// else the newest interface tree.
func (m *Manager) inputTree() *Tree {
	if len(m.menuTrees) > 0 {
		return m.menuTrees[0]
	}
	if len(m.ifaceTrees) > 0 {
		return m.ifaceTrees[0]
	}
	return nil
}

// passTrees returns the trees that get update, transform and render
// passes.
func (m *Manager) passTrees() []*Tree {
	if len(m.menuTrees) > 0 {
		return m.menuTrees[:1]
	}
	return m.ifaceTrees
}

func (m *Manager) inputMenu() (*Tree, *Menu) {
	t := m.inputTree()
	if t == nil {
		return nil, nil
	}
	return t, t.CurrentMenu()
}

func (m *Manager) capturing() *control.Control {
	_, mn := m.inputMenu()
	if mn == nil {
		return nil
	}
	if c := mn.ActiveControl(); c != nil && c.Capturing() {
		return c
	}
	return nil
}

// HandleEvent routes one raw input event. At most one logical action is
// acted on per call.
func (m *Manager) HandleEvent(ev input.Event) error {
	if ev.Kind == input.KindPadRemoved && m.scrollTask != nil && m.scrollPad == ev.Pad {
		m.log.Debug("controller %d removed while scrolling", ev.Pad)
		m.cancelScroll()
	}

	if c := m.capturing(); c != nil {
		if m.actions.WasAction(ev, m.list.Actions.Escape) == input.PressUp {
			c.CancelCapture()
			return nil
		}
		if c.Capture(ev) {
			m.log.Debug("capture finished on %q", c.Name())
		}
		return nil
	}

	if ev.Kind == input.KindMouseMove {
		m.actions.Track(ev)
		_, mn := m.inputMenu()
		if mn == nil {
			return nil
		}
		e := event.Nav(event.TypeMouseMove, input.PressIdle, input.DeviceMouse)
		e.X, e.Y = ev.X, ev.Y
		_, err := mn.HandleEvent(e)
		return err
	}

	switch m.actions.WasAction(ev, m.list.Actions.Escape) {
	case input.PressUp:
		return m.escape()
	case input.PressDown:
		return nil
	}
	switch m.actions.WasAction(ev, m.list.Actions.Toggle) {
	case input.PressUp:
		return m.toggle()
	case input.PressDown:
		return nil
	}

	t, mn := m.inputMenu()
	if mn == nil {
		return nil
	}
	for _, step := range m.cascade {
		press := m.actions.WasAction(ev, step.name)
		if press == input.PressIdle {
			continue
		}
		return m.dispatch(t, mn, step.typ, press, ev)
	}
	return nil
}

func (m *Manager) dispatch(t *Tree, mn *Menu, typ event.Type, press input.PressState, ev input.Event) error {
	e := event.Nav(typ, press, ev.Device())
	e.Group, e.Tree, e.Menu = t.Group(), t.Name(), mn.Name()
	e.X, e.Y = ev.X, ev.Y

	switch {
	case typ == event.TypeBack:
		if press != input.PressUp {
			return nil
		}
		return m.back(t)

	case typ.IsScroll():
		if press == input.PressUp {
			if m.scrollDir == typ {
				m.cancelScroll()
			}
			return nil
		}
		m.armScroll(e, mn.ScrollParam().Or(m.scroll))
		if ev.Device() == input.DeviceGamepad {
			m.scrollPad = ev.Pad
		}
	}

	_, err := mn.HandleEvent(e)
	return err
}

// armScroll starts repeating e until the matching release. The timer
// callback only posts to the queue.
func (m *Manager) armScroll(e event.Event, p scroll.Param) {
	m.cancelScroll()
	if m.scheduler == nil || m.events == nil {
		return
	}
	e.Repeat = true
	events := m.events
	m.scrollDir = e.Type
	m.scrollTask = m.scheduler.Schedule(p.Start, p.Repeat, func() {
		events.Post(e)
	})
}

func (m *Manager) cancelScroll() {
	if m.scrollTask != nil {
		m.scrollTask.Cancel()
		m.scrollTask = nil
	}
	m.scrollDir = event.TypeNone
	m.scrollPad = -1
}

// Scrolling returns the direction being repeated, or TypeNone.
func (m *Manager) Scrolling() event.Type { return m.scrollDir }

func (m *Manager) escape() error {
	if len(m.menuTrees) > 0 {
		return m.back(m.menuTrees[0])
	}
	return m.openDefault()
}

func (m *Manager) toggle() error {
	if len(m.menuTrees) > 0 {
		t := m.menuTrees[0]
		return m.DeactivateTree(t.Group(), t.Name())
	}
	return m.openDefault()
}

func (m *Manager) openDefault() error {
	name := m.list.DefaultTree
	if name == "" {
		m.log.Debug("no default tree configured")
		return nil
	}
	g, err := m.Group("")
	if err != nil {
		m.log.Warn("default tree %q: %v", name, err)
		return nil
	}
	if _, ok := g.Tree(name); !ok {
		m.log.Warn("default tree %q not in group %q", name, g.name)
		return nil
	}
	return m.ActivateTree(g.name, name)
}

func (m *Manager) back(t *Tree) error {
	m.cancelScroll()
	ok, err := t.Back()
	if err != nil {
		return err
	}
	if !ok {
		return m.DeactivateTree(t.Group(), t.Name())
	}
	return nil
}

// treeFor finds the open tree showing the named menu, falling back to the
// input tree.
func (m *Manager) treeFor(e event.Event) *Tree {
	for _, l := range [][]*Tree{m.menuTrees, m.ifaceTrees} {
		for _, t := range l {
			if e.Tree != "" && t.Name() == e.Tree {
				return t
			}
			if cur := t.CurrentMenu(); e.Tree == "" && cur != nil && cur.Name() == e.Menu {
				return t
			}
		}
	}
	return m.inputTree()
}

// HandleMenuEvent consumes an event from the queue. Events that do not
// concern trees or menus are ignored.
func (m *Manager) HandleMenuEvent(e event.Event) error {
	switch {
	case e.Type.IsScroll() && e.Repeat:
		if m.scrollTask == nil || m.scrollDir != e.Type {
			return nil
		}
		_, mn := m.inputMenu()
		if mn == nil {
			m.cancelScroll()
			return nil
		}
		_, err := mn.HandleEvent(e)
		return err
	}

	switch e.Type {
	case event.TypeToTree:
		if src := m.treeFor(e); src != nil && !src.IsInterface() {
			m.close(src)
		}
		return m.ActivateTree(e.Group, e.Target)

	case event.TypeToMenu:
		t := m.treeFor(e)
		if t == nil {
			return nil
		}
		m.cancelScroll()
		return t.ToMenu(e.Target, e.Replace)

	case event.TypeBack:
		if t := m.treeFor(e); t != nil {
			return m.back(t)
		}

	case event.TypeClose:
		if t := m.treeFor(e); t != nil {
			return m.DeactivateTree(t.Group(), t.Name())
		}

	case event.TypeSelectExecute, event.TypeSetActiveControl, event.TypeReactivate,
		event.TypeTransitionIn, event.TypeTransitionOut:
		mn, err := m.GetMenu(e.Group, e.Menu)
		if err != nil {
			return err
		}
		_, err = mn.HandleEvent(e)
		return err
	}
	return nil
}

// Update advances the pass trees and the closing trees, then blocks
// action input while any of them is transitioning.
func (m *Manager) Update(dt time.Duration) {
	busy := false
	for _, t := range m.passTrees() {
		t.Update(dt)
		busy = busy || t.Busy()
	}
	kept := m.closing[:0]
	for _, t := range m.closing {
		t.Update(dt)
		if !t.Done() {
			kept = append(kept, t)
			busy = true
		}
	}
	m.closing = kept
	m.block(busy)
}

func (m *Manager) block(busy bool) {
	if busy == m.blocked {
		return
	}
	m.blocked = busy
	if busy {
		m.resume = m.actions.ActionEnabled()
		m.actions.EnableAction(false)
		m.cancelScroll()
		return
	}
	m.actions.EnableAction(m.resume)
}

// Blocked reports whether input is held off by a transition.
func (m *Manager) Blocked() bool { return m.blocked }

// Transform places every visible menu under the origin.
func (m *Manager) Transform() {
	for _, t := range m.closing {
		t.Transform(m.origin)
	}
	for _, t := range m.passTrees() {
		t.Transform(m.origin)
	}
}

// Render draws closing trees, then the pass trees oldest first.
func (m *Manager) Render(canvas Canvas) {
	for _, t := range m.closing {
		t.Render(canvas)
	}
	trees := m.passTrees()
	for i := len(trees) - 1; i >= 0; i-- {
		trees[i].Render(canvas)
	}
}

// String summarizes the activation lists for logs.
func (m *Manager) String() string {
	names := func(l []*Tree) []string {
		out := make([]string, len(l))
		for i, t := range l {
			out[i] = t.Name()
		}
		return out
	}
	return fmt.Sprintf("menu=%v interface=%v closing=%v", names(m.menuTrees), names(m.ifaceTrees), names(m.closing))
}
