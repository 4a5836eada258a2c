package control

import (
	"fmt"
	"time"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/logging"
	"github.com/dshills/menustorm/internal/script"
	"github.com/dshills/menustorm/internal/ui/scroll"
)

// Sprite is one visual layer of a control and its per-state animations.
type Sprite struct {
	Name       string
	Animations map[State]string
	Current    string
}

// Control is a single interactive widget.
type Control struct {
	env  Env
	log  *logging.Logger
	name string
	text string
	menu string

	state     State
	lastState State
	initial   State

	action Action
	scroll scroll.Param
	nav    Navigation

	hooks    map[State]string
	animate  map[State]string
	sprites  []Sprite
	contexts []*script.Context
	smart    Behavior

	pos      geom.Vec
	size     Size
	world    geom.Matrix
	hasWorld bool
	quad     geom.Quad
}

// Action is the parsed executed action.
type Action struct {
	Type   ActionType
	Target string
}

// New builds a control from its layout configuration. The control starts
// in its configured state (INACTIVE when unset) with nothing displayed yet.
func New(cfg Config, env Env) (*Control, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: control has no name", ErrInvalidConfig)
	}
	if env.Log == nil {
		env.Log = logging.Nop()
	}

	initial, err := ParseState(cfg.State, StateInactive)
	if err != nil {
		return nil, fmt.Errorf("control %q: %w", cfg.Name, err)
	}
	if initial < StateDisabled {
		return nil, fmt.Errorf("control %q: %w: initial state %s", cfg.Name, ErrInvalidConfig, initial)
	}

	at, err := ParseActionType(cfg.Action.Type)
	if err != nil {
		return nil, fmt.Errorf("control %q: %w", cfg.Name, err)
	}
	if at.NeedsTarget() && cfg.Action.Target == "" {
		return nil, fmt.Errorf("control %q: %w: action %s needs a target", cfg.Name, ErrInvalidConfig, at)
	}

	var sp scroll.Param
	if cfg.Scroll.Start != "" || cfg.Scroll.Repeat != "" {
		sp, err = scroll.Parse(cfg.Scroll.Start, cfg.Scroll.Repeat, scroll.Default())
		if err != nil {
			return nil, fmt.Errorf("control %q: %w: %v", cfg.Name, ErrInvalidConfig, err)
		}
	}

	c := &Control{
		env:       env,
		log:       env.Log.WithComponent("control").WithField("control", cfg.Name),
		name:      cfg.Name,
		text:      cfg.Text,
		state:     initial,
		lastState: StateNull,
		initial:   initial,
		action:    Action{Type: at, Target: cfg.Action.Target},
		scroll:    sp,
		nav:       cfg.Navigation,
		pos:       cfg.Position,
		size:      cfg.Size,
		world:     geom.Identity(),
	}
	c.quad = geom.RectQuad(c.pos, c.size.W, c.size.H)

	if c.hooks, err = stateKeyed(cfg.Scripts); err != nil {
		return nil, fmt.Errorf("control %q scripts: %w", cfg.Name, err)
	}
	if c.animate, err = stateKeyed(cfg.Animate); err != nil {
		return nil, fmt.Errorf("control %q animate: %w", cfg.Name, err)
	}
	for _, sc := range cfg.Sprites {
		anims, err := stateKeyed(sc.Animations)
		if err != nil {
			return nil, fmt.Errorf("control %q sprite %q: %w", cfg.Name, sc.Name, err)
		}
		c.sprites = append(c.sprites, Sprite{Name: sc.Name, Animations: anims})
	}

	if cfg.Smart.Type != "" {
		if env.Behaviors == nil {
			return nil, critical.New("Smart Control", ErrUnknownBehavior, "control %q uses %q but no behaviors are registered", cfg.Name, cfg.Smart.Type)
		}
		b, err := env.Behaviors.Create(cfg.Smart.Type, cfg.Smart.Params)
		if err != nil {
			return nil, err
		}
		if err := b.Create(c); err != nil {
			return nil, fmt.Errorf("control %q smart %q: %w", cfg.Name, cfg.Smart.Type, err)
		}
		c.smart = b
	}

	return c, nil
}

func stateKeyed(in map[string]string) (map[State]string, error) {
	out := make(map[State]string, len(in))
	for k, v := range in {
		s, err := ParseState(k, StateNull)
		if err != nil {
			return nil, err
		}
		out[s] = v
	}
	return out, nil
}

// Name returns the control name.
func (c *Control) Name() string { return c.name }

// Text returns the display text.
func (c *Control) Text() string { return c.text }

// SetText replaces the display text.
func (c *Control) SetText(s string) { c.text = s }

// Menu returns the owning menu name.
func (c *Control) Menu() string { return c.menu }

// SetMenu records the owning menu. Called by the menu that owns c.
func (c *Control) SetMenu(name string) { c.menu = name }

// State returns the authoritative current state.
func (c *Control) State() State { return c.state }

// LastState returns the last displayed state.
func (c *Control) LastState() State { return c.lastState }

// InitialState returns the configured starting state.
func (c *Control) InitialState() State { return c.initial }

// Action returns the executed action.
func (c *Control) Action() Action { return c.action }

// Scroll returns the control's repeat timing, zero when unset.
func (c *Control) Scroll() scroll.Param { return c.scroll }

// Behavior returns the smart behavior, or nil.
func (c *Control) Behavior() Behavior { return c.smart }

// Env returns the injected services.
func (c *Control) Env() Env { return c.env }

// Sprites returns the sprite layers with their current animations.
func (c *Control) Sprites() []Sprite { return c.sprites }

// Neighbor returns the explicit neighbor for a direction, or "".
func (c *Control) Neighbor(dir event.Type) string {
	switch dir {
	case event.TypeUp:
		return c.nav.Up
	case event.TypeDown:
		return c.nav.Down
	case event.TypeLeft:
		return c.nav.Left
	case event.TypeRight:
		return c.nav.Right
	}
	return ""
}

// Capturing reports whether a smart behavior is capturing raw input.
func (c *Control) Capturing() bool {
	cp, ok := c.smart.(Capturer)
	return ok && cp.Capturing()
}

// Capture forwards a raw event to a capturing behavior. It reports whether
// the capture finished.
func (c *Control) Capture(ev input.Event) bool {
	cp, ok := c.smart.(Capturer)
	if !ok || !cp.Capturing() {
		return false
	}
	return cp.Capture(ev)
}

// CancelCapture stops a capturing behavior.
func (c *Control) CancelCapture() {
	if cp, ok := c.smart.(Capturer); ok && cp.Capturing() {
		cp.CancelCapture()
	}
}

// ChangeState sets the state and, when the displayed state differs, runs
// the transition hooks.
func (c *Control) ChangeState(s State) error {
	if s == StateNull {
		return critical.New("Control State", ErrNullState, "control %q asked to enter the null state", c.name)
	}
	c.state = s
	return c.display()
}

// EnableControl lifts a disabled control to INACTIVE.
func (c *Control) EnableControl() error {
	if c.state > StateDisabled {
		return nil
	}
	return c.ChangeState(StateInactive)
}

// ActivateControl makes the control ACTIVE. It refuses a disabled control
// and reports whether the control is active afterwards.
func (c *Control) ActivateControl() bool {
	if c.state <= StateDisabled {
		return false
	}
	if c.state >= StateActive {
		return true
	}
	if err := c.ChangeState(StateActive); err != nil {
		c.log.Error("activate: %v", err)
		return false
	}
	return true
}

// DeactivateControl drops an ACTIVE or SELECTED control to INACTIVE.
func (c *Control) DeactivateControl() error {
	if c.state <= StateInactive {
		return nil
	}
	return c.ChangeState(StateInactive)
}

// DisableControl demotes the control to DISABLED.
func (c *Control) DisableControl() error {
	return c.ChangeState(StateDisabled)
}

// Reset returns the control to its configured state.
func (c *Control) Reset() error {
	return c.ChangeState(c.initial)
}

// display runs the transition when the state differs from the one shown.
func (c *Control) display() error {
	if c.state == c.lastState {
		return nil
	}
	prev := c.lastState
	c.lastState = c.state

	hook, err := c.scriptFor(c.state, c.hooks)
	if err != nil {
		return err
	}
	if hook != "" {
		c.call(hook, prev)
	}

	c.recycle()
	c.deriveSprites()
	c.spawnAnimation()

	c.env.post(event.Event{
		Type:    event.TypeControlStateChange,
		Device:  c.env.lastDevice(),
		Menu:    c.menu,
		Control: c.name,
		State:   int(c.state),
	})
	return nil
}

// scriptFor resolves the function registered for s.
func (c *Control) scriptFor(s State, table map[State]string) (string, error) {
	if s == StateNull {
		return "", critical.New("Control State", ErrNullState, "control %q has no state to resolve a script for", c.name)
	}
	return table[s], nil
}

func (c *Control) call(fn string, prev State) {
	if c.env.Scripts == nil || !c.env.Scripts.HasFunction(fn) {
		c.log.Debug("state hook %q not defined", fn)
		return
	}
	if _, err := c.env.Scripts.Call(fn, c.name, c.state.String(), prev.String()); err != nil {
		c.log.Error("state hook %q: %v", fn, err)
	}
}

func (c *Control) recycle() {
	for _, ctx := range c.contexts {
		ctx.Recycle()
	}
	c.contexts = c.contexts[:0]
}

func (c *Control) deriveSprites() {
	for i := range c.sprites {
		c.sprites[i].Current = c.sprites[i].Animations[c.state]
	}
}

func (c *Control) spawnAnimation() {
	fn, err := c.scriptFor(c.state, c.animate)
	if err != nil || fn == "" || c.env.Scripts == nil {
		return
	}
	if !c.env.Scripts.HasFunction(fn) {
		c.log.Debug("animation %q not defined", fn)
		return
	}
	ctx, err := c.env.Scripts.Spawn(fn, c.name, c.state.String())
	if err != nil {
		c.log.Error("animation %q: %v", fn, err)
		return
	}
	c.contexts = append(c.contexts, ctx)
}

// Animating returns the number of running animation coroutines.
func (c *Control) Animating() int {
	return len(c.contexts)
}

// HandleTransition redisplays the control when its menu transitions. Hooks
// fire only if the state changed while the menu was hidden. Leaving stops
// the animations; entering restarts them.
func (c *Control) HandleTransition(in bool) error {
	if !in {
		c.recycle()
		return nil
	}
	if c.state == c.lastState {
		if len(c.contexts) == 0 {
			c.spawnAnimation()
		}
		return nil
	}
	return c.display()
}

// HandleEvent offers a navigation event to the smart behavior.
func (c *Control) HandleEvent(e event.Event) bool {
	if c.smart == nil || c.state == StateDisabled {
		return false
	}
	return c.smart.HandleEvent(c, e)
}

// HandleSelect drives selection. A press on an ACTIVE control selects it;
// the release executes and returns it to ACTIVE. For the mouse both edges
// must land inside the control, and a release outside cancels.
func (c *Control) HandleSelect(press input.PressState, device input.Device, x, y float64) error {
	switch press {
	case input.PressDown:
		if c.state != StateActive {
			return nil
		}
		if device == input.DeviceMouse && !c.Hit(x, y) {
			return nil
		}
		return c.ChangeState(StateSelected)

	case input.PressUp:
		if c.state != StateSelected {
			return nil
		}
		if device == input.DeviceMouse && !c.Hit(x, y) {
			return c.ChangeState(StateActive)
		}
		if err := c.OnSelectExecute(); err != nil {
			return err
		}
		return c.ChangeState(StateActive)
	}
	return nil
}

// OnSelectExecute runs the configured action, then the smart behavior, then
// posts ControlExecuted.
func (c *Control) OnSelectExecute() error {
	base := event.Event{
		Device:  c.env.lastDevice(),
		Menu:    c.menu,
		Control: c.name,
		Target:  c.action.Target,
	}

	var t event.Type
	switch c.action.Type {
	case ActionToTree:
		t = event.TypeToTree
	case ActionToMenu:
		t = event.TypeToMenu
	case ActionBack:
		t = event.TypeBack
	case ActionClose:
		t = event.TypeClose
	case ActionGameStateChange:
		t = event.TypeGameStateChange
	case ActionQuit:
		t = event.TypeQuit
	}
	if t != event.TypeNone {
		e := base
		e.Type = t
		c.env.post(e)
	}

	if c.smart != nil {
		if err := c.smart.Execute(c); err != nil {
			return fmt.Errorf("control %q smart execute: %w", c.name, err)
		}
	}

	done := base
	done.Type = event.TypeControlExecuted
	c.env.post(done)
	c.log.Debug("executed %s", c.action.Type)
	return nil
}

// SetTransform places the control in world space. The collision quad is
// recomputed only when m differs from the current transform.
func (c *Control) SetTransform(m geom.Matrix) {
	if c.hasWorld && m == c.world {
		return
	}
	c.world = m
	c.hasWorld = true
	c.quad = geom.RectQuad(c.pos, c.size.W, c.size.H).Transform(m)
}

// Quad returns the world-space collision quad.
func (c *Control) Quad() geom.Quad { return c.quad }

// Hit reports whether (x, y) is inside the collision quad.
func (c *Control) Hit(x, y float64) bool {
	return c.quad.Contains(geom.V(x, y))
}

// HandleMouseMove activates the control when the cursor enters it. It
// reports true only when this call activated the control.
func (c *Control) HandleMouseMove(x, y float64) bool {
	if c.state == StateDisabled || c.state >= StateActive {
		return false
	}
	if !c.Hit(x, y) {
		return false
	}
	return c.ActivateControl()
}

// Update resumes the animation coroutines with the frame time in seconds.
func (c *Control) Update(dt time.Duration) {
	live := c.contexts[:0]
	for _, ctx := range c.contexts {
		done, err := ctx.Resume(dt.Seconds())
		if err != nil {
			c.log.Error("animation %q: %v", ctx.Name(), err)
		}
		if !done {
			live = append(live, ctx)
		}
	}
	c.contexts = live
}

// Render draws the control.
func (c *Control) Render(canvas Canvas) {
	v := View{
		Menu:      c.menu,
		Name:      c.name,
		Text:      c.text,
		State:     c.state,
		Quad:      c.quad,
		Capturing: c.Capturing(),
	}
	if vl, ok := c.smart.(Valuer); ok {
		v.Value = vl.Value()
	}
	if len(c.sprites) > 0 {
		v.Sprites = make(map[string]string, len(c.sprites))
		for _, s := range c.sprites {
			v.Sprites[s.Name] = s.Current
		}
	}
	canvas.DrawControl(v)
}
