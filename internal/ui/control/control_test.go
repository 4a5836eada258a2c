package control

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/geom"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/scroll"
)

func TestNew(t *testing.T) {
	env, _, _ := newTestEnv(t)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Name: "resume"}, false},
		{"no name", Config{}, true},
		{"bad state", Config{Name: "x", State: "glowing"}, true},
		{"null state", Config{Name: "x", State: "null"}, true},
		{"missing target", Config{Name: "x", Action: ActionConfig{Type: "to_tree"}}, true},
		{"bad scroll", Config{Name: "x", Scroll: ScrollConfig{Start: "fast"}}, true},
		{"bad script state", Config{Name: "x", Scripts: map[string]string{"hover": "f"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, env)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	c := mustNew(t, Config{Name: "resume", Scroll: ScrollConfig{Repeat: "50ms"}}, env)
	if c.State() != StateInactive {
		t.Errorf("State() = %v, want inactive", c.State())
	}
	if c.LastState() != StateNull {
		t.Errorf("LastState() = %v, want null", c.LastState())
	}
	want := scroll.Param{Start: scroll.DefaultStart, Repeat: 50 * time.Millisecond}
	if c.Scroll() != want {
		t.Errorf("Scroll() = %v, want %v", c.Scroll(), want)
	}
}

func TestDisableThenActivate(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "opt"}, env)

	if err := c.DisableControl(); err != nil {
		t.Fatalf("DisableControl() error = %v", err)
	}
	if c.ActivateControl() {
		t.Error("ActivateControl() = true on a disabled control")
	}
	if c.State() != StateDisabled {
		t.Fatalf("State() = %v, want disabled", c.State())
	}

	if err := c.EnableControl(); err != nil {
		t.Fatalf("EnableControl() error = %v", err)
	}
	if c.State() != StateInactive {
		t.Errorf("State() after enable = %v, want inactive", c.State())
	}
	if !c.ActivateControl() {
		t.Error("ActivateControl() = false after enable")
	}
	if c.State() != StateActive {
		t.Errorf("State() = %v, want active", c.State())
	}
}

func TestEnableLeavesActiveAlone(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "opt", State: "active"}, env)
	if err := c.EnableControl(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateActive {
		t.Errorf("State() = %v, want active", c.State())
	}
}

func TestChangeStateHookFiresOnce(t *testing.T) {
	env, q, eng := newTestEnv(t)
	c := mustNew(t, Config{
		Name:    "start",
		Scripts: map[string]string{"active": "on_state"},
	}, env)

	for i := 0; i < 2; i++ {
		if err := c.ChangeState(StateActive); err != nil {
			t.Fatalf("ChangeState() error = %v", err)
		}
	}

	if n := hookCount(t, eng); n != 1 {
		t.Errorf("hook calls = %d, want 1", n)
	}
	res, _ := eng.Call("last_call")
	if res[0] != "start:active" {
		t.Errorf("last hook = %v, want start:active", res[0])
	}

	changes := 0
	for _, e := range q.Drain() {
		if e.Type == event.TypeControlStateChange {
			changes++
			if e.State != int(StateActive) || e.Control != "start" {
				t.Errorf("state event = %+v", e)
			}
		}
	}
	if changes != 1 {
		t.Errorf("state change events = %d, want 1", changes)
	}
}

func TestChangeStateNull(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "x"}, env)

	err := c.ChangeState(StateNull)
	if !critical.Is(err) {
		t.Fatalf("ChangeState(null) error = %v, want critical", err)
	}
	if !errors.Is(err, ErrNullState) {
		t.Errorf("error = %v, want ErrNullState", err)
	}
	if c.State() != StateInactive {
		t.Errorf("State() = %v, want unchanged", c.State())
	}
}

func TestDeactivate(t *testing.T) {
	env, _, eng := newTestEnv(t)
	c := mustNew(t, Config{
		Name:    "x",
		Scripts: map[string]string{"inactive": "on_state"},
	}, env)

	// Displayed once as inactive.
	if err := c.HandleTransition(true); err != nil {
		t.Fatal(err)
	}
	if err := c.DeactivateControl(); err != nil {
		t.Fatal(err)
	}
	if n := hookCount(t, eng); n != 1 {
		t.Errorf("hook calls = %d, want 1", n)
	}

	c.ActivateControl()
	if err := c.DeactivateControl(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateInactive {
		t.Errorf("State() = %v, want inactive", c.State())
	}
	if n := hookCount(t, eng); n != 2 {
		t.Errorf("hook calls = %d, want 2", n)
	}

	c.DisableControl()
	c.DeactivateControl()
	if c.State() != StateDisabled {
		t.Errorf("DeactivateControl() raised a disabled control to %v", c.State())
	}
}

func TestHandleSelectKeyboard(t *testing.T) {
	env, q, _ := newTestEnv(t)
	c := mustNew(t, Config{
		Name:   "options",
		Action: ActionConfig{Type: "to_tree", Target: "settings_tree"},
	}, env)
	c.SetMenu("pause_menu")

	// Selecting an inactive control does nothing.
	if err := c.HandleSelect(input.PressDown, input.DeviceKeyboard, 0, 0); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateInactive {
		t.Fatalf("State() = %v, want inactive", c.State())
	}

	c.ActivateControl()
	q.Drain()

	if err := c.HandleSelect(input.PressDown, input.DeviceKeyboard, 0, 0); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateSelected {
		t.Fatalf("State() after down = %v, want selected", c.State())
	}
	if err := c.HandleSelect(input.PressUp, input.DeviceKeyboard, 0, 0); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateActive {
		t.Errorf("State() after up = %v, want active", c.State())
	}

	events := q.Drain()
	got := types(events)
	want := []event.Type{event.TypeToTree, event.TypeControlExecuted}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for _, e := range events {
		if e.Type == event.TypeToTree && (e.Target != "settings_tree" || e.Menu != "pause_menu") {
			t.Errorf("to-tree event = %+v", e)
		}
	}
}

func TestOnSelectExecuteActions(t *testing.T) {
	tests := []struct {
		action string
		target string
		want   event.Type
	}{
		{"to_menu", "audio_menu", event.TypeToMenu},
		{"back", "", event.TypeBack},
		{"close", "", event.TypeClose},
		{"game_state_change", "title", event.TypeGameStateChange},
		{"quit", "", event.TypeQuit},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			env, q, _ := newTestEnv(t)
			c := mustNew(t, Config{Name: "b", Action: ActionConfig{Type: tt.action, Target: tt.target}}, env)
			if err := c.OnSelectExecute(); err != nil {
				t.Fatal(err)
			}
			got := types(q.Drain())
			if len(got) != 2 || got[0] != tt.want || got[1] != event.TypeControlExecuted {
				t.Errorf("events = %v, want [%v control.executed]", got, tt.want)
			}
		})
	}

	env, q, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "label"}, env)
	c.OnSelectExecute()
	if got := types(q.Drain()); len(got) != 1 || got[0] != event.TypeControlExecuted {
		t.Errorf("none action events = %v", got)
	}
}

func TestHandleSelectMouse(t *testing.T) {
	env, q, _ := newTestEnv(t)
	c := mustNew(t, Config{
		Name:     "quit",
		Position: geom.V(0, 0),
		Size:     Size{W: 10, H: 2},
		Action:   ActionConfig{Type: "quit"},
	}, env)
	c.SetTransform(geom.Translate(50, 10))
	c.ActivateControl()

	// Press outside is ignored.
	c.HandleSelect(input.PressDown, input.DeviceMouse, 0, 0)
	if c.State() != StateActive {
		t.Fatalf("State() = %v, want active", c.State())
	}

	c.HandleSelect(input.PressDown, input.DeviceMouse, 52, 10)
	if c.State() != StateSelected {
		t.Fatalf("State() = %v, want selected", c.State())
	}

	// Release outside cancels without executing.
	q.Drain()
	c.HandleSelect(input.PressUp, input.DeviceMouse, 100, 100)
	if c.State() != StateActive {
		t.Errorf("State() = %v, want active", c.State())
	}
	if got := types(q.Drain()); len(got) != 0 {
		t.Errorf("cancelled select posted %v", got)
	}

	c.HandleSelect(input.PressDown, input.DeviceMouse, 50, 10)
	c.HandleSelect(input.PressUp, input.DeviceMouse, 50, 10)
	if got := types(q.Drain()); len(got) != 2 || got[0] != event.TypeQuit {
		t.Errorf("events = %v, want quit then executed", got)
	}
}

func TestHandleMouseMove(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "m", Size: Size{W: 4, H: 4}}, env)
	c.SetTransform(geom.Translate(10, 10))

	if c.HandleMouseMove(0, 0) {
		t.Error("HandleMouseMove(outside) = true")
	}
	if !c.HandleMouseMove(11, 11) {
		t.Error("HandleMouseMove(inside) = false")
	}
	if c.State() != StateActive {
		t.Errorf("State() = %v, want active", c.State())
	}
	if c.HandleMouseMove(11, 11) {
		t.Error("HandleMouseMove() on active control = true")
	}

	c.DisableControl()
	if c.HandleMouseMove(11, 11) {
		t.Error("HandleMouseMove() on disabled control = true")
	}
}

func TestSetTransform(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "m", Position: geom.V(1, 1), Size: Size{W: 2, H: 2}}, env)

	c.SetTransform(geom.Translate(5, 0))
	q1 := c.Quad()
	c.SetTransform(geom.Translate(5, 0))
	if c.Quad() != q1 {
		t.Error("quad changed for identical transform")
	}
	c.SetTransform(geom.Translate(0, 5))
	if c.Quad() == q1 {
		t.Error("quad not recomputed for new transform")
	}
	if !c.Hit(1, 6) {
		t.Error("Hit(1,6) = false after translate")
	}
}

func TestAnimationRecycle(t *testing.T) {
	env, _, eng := newTestEnv(t)
	c := mustNew(t, Config{
		Name:    "a",
		Animate: map[string]string{"active": "pulse"},
	}, env)

	c.ChangeState(StateActive)
	if c.Animating() != 1 {
		t.Fatalf("Animating() = %d, want 1", c.Animating())
	}
	c.Update(16 * time.Millisecond)
	c.Update(16 * time.Millisecond)
	if c.Animating() != 1 {
		t.Errorf("Animating() after updates = %d, want 1", c.Animating())
	}

	c.ChangeState(StateInactive)
	if c.Animating() != 0 {
		t.Errorf("Animating() = %d, want 0", c.Animating())
	}
	if eng.Live() != 0 {
		t.Errorf("engine Live() = %d, want 0", eng.Live())
	}
}

func TestHandleTransition(t *testing.T) {
	env, _, eng := newTestEnv(t)
	c := mustNew(t, Config{
		Name:    "t",
		Scripts: map[string]string{"inactive": "on_state"},
		Animate: map[string]string{"inactive": "pulse"},
	}, env)

	c.HandleTransition(true)
	if n := hookCount(t, eng); n != 1 {
		t.Fatalf("hook calls = %d, want 1", n)
	}

	c.HandleTransition(false)
	if c.Animating() != 0 {
		t.Errorf("Animating() after out = %d, want 0", c.Animating())
	}

	c.HandleTransition(true)
	if n := hookCount(t, eng); n != 1 {
		t.Errorf("hook calls after re-entry = %d, want 1", n)
	}
	if c.Animating() != 1 {
		t.Errorf("Animating() after re-entry = %d, want 1", c.Animating())
	}
}

func TestSpritesAndRender(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{
		Name: "s",
		Text: "Start",
		Sprites: []SpriteConfig{{
			Name:       "frame",
			Animations: map[string]string{"inactive": "dim", "active": "glow"},
		}},
	}, env)

	c.HandleTransition(true)
	c.ActivateControl()

	var canvas recordCanvas
	c.Render(&canvas)
	if len(canvas.views) != 1 {
		t.Fatalf("views = %d, want 1", len(canvas.views))
	}
	v := canvas.views[0]
	if v.Text != "Start" || v.State != StateActive || v.Sprites["frame"] != "glow" {
		t.Errorf("view = %+v", v)
	}
}

func TestNeighbor(t *testing.T) {
	env, _, _ := newTestEnv(t)
	c := mustNew(t, Config{Name: "n", Navigation: Navigation{Up: "a", Right: "b"}}, env)
	if c.Neighbor(event.TypeUp) != "a" || c.Neighbor(event.TypeRight) != "b" || c.Neighbor(event.TypeDown) != "" {
		t.Error("Neighbor() mismatch")
	}
	if c.Neighbor(event.TypeSelect) != "" {
		t.Error("Neighbor(select) should be empty")
	}
}
