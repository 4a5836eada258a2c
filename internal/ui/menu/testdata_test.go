package menu

import (
	"testing"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/action"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
	"github.com/dshills/menustorm/internal/sched"
	"github.com/dshills/menustorm/internal/ui/control"
	"github.com/dshills/menustorm/internal/ui/smart"
)

const testBindings = `{
  "keyboardMapping": {
    "hidden": [
      {"id": "ESCAPE", "action": "Escape"},
      {"id": "TAB", "action": "Menu Toggle"},
      {"id": "RETURN", "action": "Select"},
      {"id": "BACKSPACE", "action": "Back"},
      {"id": "UP", "action": "Up"},
      {"id": "DOWN", "action": "Down"},
      {"id": "LEFT", "action": "Left"},
      {"id": "RIGHT", "action": "Right"},
      {"id": "Q", "action": "Tab Left"},
      {"id": "E", "action": "Tab Right"}
    ],
    "visible": [
      {"id": "J", "action": "Jump", "default": "J", "configurable": true}
    ]
  },
  "mouseMapping": {
    "hidden": [
      {"id": "LEFT MOUSE", "action": "Select"}
    ]
  },
  "gamepadMapping": {
    "hidden": [
      {"id": "A", "action": "Select"},
      {"id": "DPAD DOWN", "action": "Down"},
      {"id": "L STICK DOWN", "action": "Down"}
    ]
  }
}`

const testActions = `
defaultTree = "pause_tree"

[scroll]
startDelay = "300ms"
repeatDelay = "50ms"
`

const testGroup = `
[[menu]]
name = "pause_menu"
file = "pause.yaml"

[[menu]]
name = "options_menu"
file = "options.yaml"

[[menu]]
name = "audio_menu"
file = "audio.yaml"

[[menu]]
name = "hud_menu"
file = "hud.yaml"

[[tree]]
name = "pause_tree"
root = "pause_menu"

[[tree]]
name = "options_tree"
root = "options_menu"

[[tree]]
name = "hud_tree"
root = "hud_menu"
interface = true
`

const pauseLayout = `
name: pause_menu
position: {x: 10, y: 10}
controls:
  - name: resume
    text: Resume
    position: {x: 50, y: 10}
    size: {w: 100, h: 16}
    action: {type: close}
  - name: options
    text: Options
    position: {x: 50, y: 30}
    size: {w: 100, h: 16}
    action: {type: to_menu, target: options_menu}
  - name: locked
    text: Locked
    position: {x: 50, y: 50}
    size: {w: 100, h: 16}
    state: disabled
  - name: quit
    text: Quit
    position: {x: 50, y: 70}
    size: {w: 100, h: 16}
    action: {type: quit}
`

const optionsLayout = `
name: options_menu
tabRight: audio_menu
controls:
  - name: video
    text: Video
  - name: settings
    text: Settings
    action: {type: to_tree, target: options_tree}
  - name: back
    text: Back
    action: {type: back}
`

const audioLayout = `
name: audio_menu
tabLeft: options_menu
controls:
  - name: volume
    text: Volume
`

const hudLayout = `
name: hud_menu
transition: 200ms
controls:
  - name: score
    text: "0"
`

const bindsGroup = `
[[menu]]
name = "controls_menu"
file = "controls.yaml"

[[tree]]
name = "controls_tree"
root = "controls_menu"
`

const controlsLayout = `
name: controls_menu
controls:
  - name: jump
    text: Jump
    smart:
      type: keybind
      params: {action: Jump}
  - name: sfx
    text: Effects
    smart:
      type: slider
      params: {min: "0", max: "3", value: "1"}
`

func testFS() *loader.MemFS {
	fsys := loader.NewMemFS()
	fsys.AddFile("bindings.json", testBindings)
	fsys.AddFile("menus/actions.toml", testActions)
	fsys.AddFile("menus/game.toml", testGroup)
	fsys.AddFile("menus/pause.yaml", pauseLayout)
	fsys.AddFile("menus/options.yaml", optionsLayout)
	fsys.AddFile("menus/audio.yaml", audioLayout)
	fsys.AddFile("menus/hud.yaml", hudLayout)
	fsys.AddFile("menus/binds.toml", bindsGroup)
	fsys.AddFile("menus/controls.yaml", controlsLayout)
	return fsys
}

type fixture struct {
	fsys    *loader.MemFS
	mgr     *Manager
	actions *action.Manager
	queue   *event.Queue
	sched   *sched.ManualScheduler
	// outward collects drained events the manager ignores.
	outward []event.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fsys := testFS()
	am := action.NewManager()
	if err := am.LoadBindingsFile(fsys, "bindings.json"); err != nil {
		t.Fatalf("LoadBindingsFile() error = %v", err)
	}
	reg := control.NewRegistry()
	smart.Register(reg, am)
	f := &fixture{
		fsys:    fsys,
		actions: am,
		queue:   event.NewQueue(),
		sched:   sched.NewManualScheduler(),
	}
	f.mgr = NewManager(am, f.queue, f.sched, WithGroupWorkers(2), WithBehaviors(reg))
	if err := f.mgr.LoadActionList(fsys, "menus/actions.toml"); err != nil {
		t.Fatalf("LoadActionList() error = %v", err)
	}
	if err := f.mgr.LoadGroup(fsys, "game", "menus/game.toml"); err != nil {
		t.Fatalf("LoadGroup() error = %v", err)
	}
	return f
}

// pump feeds queued events to the manager until the queue is empty.
func (f *fixture) pump(t *testing.T) {
	t.Helper()
	for i := 0; i < 10; i++ {
		events := f.queue.Drain()
		if len(events) == 0 {
			return
		}
		for _, e := range events {
			switch e.Type {
			case event.TypeQuit, event.TypeGameStateChange, event.TypeControlExecuted:
				f.outward = append(f.outward, e)
			}
			if err := f.mgr.HandleMenuEvent(e); err != nil {
				t.Fatalf("HandleMenuEvent(%s) error = %v", e, err)
			}
		}
	}
	t.Fatal("queue did not settle")
}

func (f *fixture) send(t *testing.T, ev input.Event) {
	t.Helper()
	if err := f.mgr.HandleEvent(ev); err != nil {
		t.Fatalf("HandleEvent(%s) error = %v", ev, err)
	}
	f.pump(t)
}

// tap presses and releases k.
func (f *fixture) tap(t *testing.T, k key.Key) {
	t.Helper()
	f.send(t, input.KeyDown(int(k)))
	f.send(t, input.KeyUp(int(k)))
}

func (f *fixture) click(t *testing.T, x, y float64) {
	t.Helper()
	f.send(t, input.MouseDown(int(mouse.ButtonLeft), x, y))
	f.send(t, input.MouseUp(int(mouse.ButtonLeft), x, y))
}

func (f *fixture) activeControl(t *testing.T, tree string) string {
	t.Helper()
	mn, err := f.mgr.GetActiveMenu("game", tree)
	if err != nil {
		t.Fatalf("GetActiveMenu(%q) error = %v", tree, err)
	}
	c := mn.ActiveControl()
	if c == nil {
		return ""
	}
	return c.Name()
}

func (f *fixture) currentMenu(t *testing.T, tree string) string {
	t.Helper()
	mn, err := f.mgr.GetActiveMenu("game", tree)
	if err != nil {
		t.Fatalf("GetActiveMenu(%q) error = %v", tree, err)
	}
	return mn.Name()
}

type recordCanvas struct {
	menus    []string
	controls []string
}

func (r *recordCanvas) DrawMenu(v View)            { r.menus = append(r.menus, v.Name) }
func (r *recordCanvas) DrawControl(v control.View) { r.controls = append(r.controls, v.Name) }
