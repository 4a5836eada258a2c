package menu

import (
	"fmt"
	"time"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/logging"
	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/scroll"
)

// Phase is a menu's visibility.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseIn
	PhaseShown
	PhaseOut
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseIn:
		return "in"
	case PhaseShown:
		return "shown"
	case PhaseOut:
		return "out"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Layout is a menu layout file.
type Layout struct {
	Name       string               `yaml:"name"`
	Position   geom.Vec             `yaml:"position"`
	Transition string               `yaml:"transition"`
	TabLeft    string               `yaml:"tabLeft"`
	TabRight   string               `yaml:"tabRight"`
	Scroll     control.ScrollConfig `yaml:"scroll"`
	Controls   []control.Config     `yaml:"controls"`
}

// View describes a menu to the canvas before its controls are drawn.
type View struct {
	Name     string
	Phase    Phase
	Progress float64
	Position geom.Vec
}

// Canvas receives menu and control views during a render pass.
type Canvas interface {
	control.Canvas
	DrawMenu(v View)
}

// Menu is an ordered collection of controls.
type Menu struct {
	name       string
	pos        geom.Vec
	transition time.Duration
	tabLeft    string
	tabRight   string
	scroll     scroll.Param

	controls []*control.Control
	index    map[string]int
	active   int
	// Control under the cursor, or -1.
	hover int

	phase   Phase
	elapsed time.Duration

	env control.Env
	log *logging.Logger
}

// NewMenu builds a menu and its controls. Controls are constructed in
// layout order.
func NewMenu(l Layout, env control.Env) (*Menu, error) {
	if env.Log == nil {
		env.Log = logging.Nop()
	}
	m := &Menu{
		name:     l.Name,
		pos:      l.Position,
		tabLeft:  l.TabLeft,
		tabRight: l.TabRight,
		index:    make(map[string]int, len(l.Controls)),
		active:   -1,
		hover:    -1,
		env:      env,
		log:      env.Log.WithComponent("menu").WithField("menu", l.Name),
	}

	if l.Transition != "" {
		d, err := time.ParseDuration(l.Transition)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("menu %q: %w: transition %q", l.Name, ErrMalformedConfig, l.Transition)
		}
		m.transition = d
	}
	if l.Scroll.Start != "" || l.Scroll.Repeat != "" {
		p, err := scroll.Parse(l.Scroll.Start, l.Scroll.Repeat, scroll.Default())
		if err != nil {
			return nil, fmt.Errorf("menu %q: %w: %v", l.Name, ErrMalformedConfig, err)
		}
		m.scroll = p
	}

	for _, cfg := range l.Controls {
		if _, dup := m.index[cfg.Name]; dup {
			return nil, fmt.Errorf("menu %q: %w: duplicate control %q", l.Name, ErrMalformedConfig, cfg.Name)
		}
		c, err := control.New(cfg, env)
		if err != nil {
			return nil, fmt.Errorf("menu %q: %w", l.Name, err)
		}
		c.SetMenu(l.Name)
		m.index[cfg.Name] = len(m.controls)
		m.controls = append(m.controls, c)
		if c.State() >= control.StateActive && m.active < 0 {
			m.active = len(m.controls) - 1
		}
	}
	return m, nil
}

// Name returns the menu name.
func (m *Menu) Name() string { return m.name }

// Controls returns the controls in order.
func (m *Menu) Controls() []*control.Control { return m.controls }

// Phase returns the visibility phase.
func (m *Menu) Phase() Phase { return m.phase }

// Busy reports whether the menu is transitioning.
func (m *Menu) Busy() bool { return m.phase == PhaseIn || m.phase == PhaseOut }

// TabLeft returns the sibling menu to the left, or "".
func (m *Menu) TabLeft() string { return m.tabLeft }

// TabRight returns the sibling menu to the right, or "".
func (m *Menu) TabRight() string { return m.tabRight }

// Control returns the named control.
func (m *Menu) Control(name string) (*control.Control, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, critical.New("Menu", control.ErrControlNotFound, "menu %q has no control %q", m.name, name)
	}
	return m.controls[i], nil
}

// ActiveControl returns the focused control, or nil.
func (m *Menu) ActiveControl() *control.Control {
	if m.active < 0 {
		return nil
	}
	return m.controls[m.active]
}

// ScrollParam returns the repeat timing of the focused control, falling
// back to the menu's. The result is zero when neither sets one.
func (m *Menu) ScrollParam() scroll.Param {
	if c := m.ActiveControl(); c != nil && !c.Scroll().IsZero() {
		return c.Scroll()
	}
	return m.scroll
}

// ActivateFirstInactiveControl focuses the first control that can take
// focus, unless one already has it. It reports whether a control is
// focused afterwards.
func (m *Menu) ActivateFirstInactiveControl() bool {
	if c := m.ActiveControl(); c != nil && c.State() >= control.StateActive {
		return true
	}
	for i, c := range m.controls {
		if c.State() == control.StateInactive {
			return m.focus(i)
		}
	}
	return false
}

// SetActiveControl focuses the named control. A disabled control is left
// alone.
func (m *Menu) SetActiveControl(name string) error {
	i, ok := m.index[name]
	if !ok {
		return critical.New("Menu", control.ErrControlNotFound, "menu %q has no control %q", m.name, name)
	}
	m.focus(i)
	return nil
}

// ClearActiveControl drops focus. The mouse does this when the cursor
// leaves the control it focused; a held selection keeps its focus.
func (m *Menu) ClearActiveControl() error {
	if c := m.ActiveControl(); c != nil {
		m.active = -1
		return c.DeactivateControl()
	}
	return nil
}

func (m *Menu) focus(i int) bool {
	c := m.controls[i]
	if c.State() == control.StateDisabled {
		return false
	}
	if m.active >= 0 && m.active != i {
		if err := m.controls[m.active].DeactivateControl(); err != nil {
			m.log.Error("deactivate %q: %v", m.controls[m.active].Name(), err)
		}
	}
	m.active = i
	return c.ActivateControl()
}

// HandleEvent applies a dispatched event and reports whether it was used.
func (m *Menu) HandleEvent(e event.Event) (bool, error) {
	if e.Type.IsNavigation() && e.Type != event.TypeMouseMove && e.Type != event.TypeSelect {
		if c := m.ActiveControl(); c != nil && c.HandleEvent(e) {
			return true, nil
		}
	}

	switch e.Type {
	case event.TypeSelect:
		return m.handleSelect(e)

	case event.TypeUp, event.TypeDown, event.TypeLeft, event.TypeRight:
		if e.Press != input.PressDown || e.Device == input.DeviceMouse {
			return false, nil
		}
		return m.navigate(e.Type), nil

	case event.TypeTabLeft, event.TypeTabRight:
		if e.Press != input.PressDown {
			return false, nil
		}
		target := m.tabLeft
		if e.Type == event.TypeTabRight {
			target = m.tabRight
		}
		if target == "" {
			return false, nil
		}
		m.post(event.Event{Type: event.TypeToMenu, Device: e.Device, Tree: e.Tree, Menu: m.name, Target: target, Replace: true})
		return true, nil

	case event.TypeMouseMove:
		return m.handleMouseMove(e.X, e.Y)

	case event.TypeSelectExecute:
		c, err := m.target(e)
		if err != nil || c == nil {
			return false, err
		}
		return true, c.OnSelectExecute()

	case event.TypeSetActiveControl:
		return true, m.SetActiveControl(e.Control)

	case event.TypeReactivate:
		if e.Control != "" {
			return true, m.SetActiveControl(e.Control)
		}
		return m.ActivateFirstInactiveControl(), nil

	case event.TypeTransitionIn:
		return true, m.TransitionIn()

	case event.TypeTransitionOut:
		return true, m.TransitionOut()
	}
	return false, nil
}

func (m *Menu) target(e event.Event) (*control.Control, error) {
	if e.Control != "" {
		return m.Control(e.Control)
	}
	return m.ActiveControl(), nil
}

func (m *Menu) handleSelect(e event.Event) (bool, error) {
	if e.Device == input.DeviceMouse && e.Press == input.PressDown {
		for i, c := range m.controls {
			if c.State() != control.StateDisabled && c.Hit(e.X, e.Y) {
				m.focus(i)
				return true, c.HandleSelect(e.Press, e.Device, e.X, e.Y)
			}
		}
		return false, nil
	}

	c := m.ActiveControl()
	if c == nil {
		if e.Press == input.PressDown && e.Device != input.DeviceMouse {
			return m.ActivateFirstInactiveControl(), nil
		}
		return false, nil
	}
	return true, c.HandleSelect(e.Press, e.Device, e.X, e.Y)
}

func (m *Menu) handleMouseMove(x, y float64) (bool, error) {
	for i, c := range m.controls {
		if c.HandleMouseMove(x, y) {
			if m.active >= 0 && m.active != i {
				if err := m.controls[m.active].DeactivateControl(); err != nil {
					return true, err
				}
			}
			m.active, m.hover = i, i
			return true, nil
		}
		if c.State() != control.StateDisabled && c.Hit(x, y) {
			m.hover = i
			return false, nil
		}
	}

	left := m.hover
	m.hover = -1
	if left < 0 || left != m.active {
		return false, nil
	}
	if c := m.controls[left]; c.State() == control.StateActive {
		return true, m.ClearActiveControl()
	}
	return false, nil
}

// navigate moves focus to the explicit neighbor, or else to the previous
// or next enabled control with wrap-around.
func (m *Menu) navigate(dir event.Type) bool {
	if len(m.controls) == 0 {
		return false
	}
	if m.active < 0 {
		return m.ActivateFirstInactiveControl()
	}

	cur := m.controls[m.active]
	if n := cur.Neighbor(dir); n != "" {
		if i, ok := m.index[n]; ok && m.controls[i].State() != control.StateDisabled {
			return m.focus(i)
		}
		m.log.Debug("neighbor %q of %q unavailable", n, cur.Name())
	}

	step := 1
	if dir == event.TypeUp || dir == event.TypeLeft {
		step = -1
	}
	n := len(m.controls)
	for k := 1; k < n; k++ {
		i := ((m.active+step*k)%n + n) % n
		if m.controls[i].State() != control.StateDisabled {
			return m.focus(i)
		}
	}
	return false
}

func (m *Menu) post(e event.Event) {
	if m.env.Events != nil {
		m.env.Events.Post(e)
	}
}

// TransitionIn shows the menu. Controls redisplay and restart animations.
func (m *Menu) TransitionIn() error {
	m.elapsed = 0
	m.phase = PhaseIn
	if m.transition == 0 {
		m.phase = PhaseShown
	}
	for _, c := range m.controls {
		if err := c.HandleTransition(true); err != nil {
			return err
		}
	}
	return nil
}

// TransitionOut hides the menu. Controls stop their animations.
func (m *Menu) TransitionOut() error {
	m.elapsed = 0
	m.phase = PhaseOut
	if m.transition == 0 {
		m.phase = PhaseHidden
	}
	for _, c := range m.controls {
		if err := c.HandleTransition(false); err != nil {
			return err
		}
	}
	return nil
}

// Progress returns how far the current transition has run, from 0 to 1.
func (m *Menu) Progress() float64 {
	switch m.phase {
	case PhaseShown:
		return 1
	case PhaseHidden:
		return 0
	}
	if m.transition == 0 {
		return 1
	}
	p := float64(m.elapsed) / float64(m.transition)
	if p > 1 {
		p = 1
	}
	return p
}

// Update advances the transition and the control animations.
func (m *Menu) Update(dt time.Duration) {
	if m.Busy() {
		m.elapsed += dt
		if m.elapsed >= m.transition {
			if m.phase == PhaseIn {
				m.phase = PhaseShown
			} else {
				m.phase = PhaseHidden
			}
		}
	}
	for _, c := range m.controls {
		c.Update(dt)
	}
}

// Transform places the menu under parent.
func (m *Menu) Transform(parent geom.Matrix) {
	world := parent.Mul(geom.Translate(m.pos.X, m.pos.Y))
	for _, c := range m.controls {
		c.SetTransform(world)
	}
}

// Render draws the menu and its controls unless it is hidden.
func (m *Menu) Render(canvas Canvas) {
	if m.phase == PhaseHidden {
		return
	}
	canvas.DrawMenu(View{Name: m.name, Phase: m.phase, Progress: m.Progress(), Position: m.pos})
	for _, c := range m.controls {
		c.Render(canvas)
	}
}
