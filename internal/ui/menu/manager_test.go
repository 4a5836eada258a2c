package menu

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/pad"
	"github.com/dshills/menustorm/internal/ui/smart"
)

func TestEscapeOpensAndClosesDefaultTree(t *testing.T) {
	f := newFixture(t)

	f.tap(t, key.KeyEscape)
	if !f.mgr.IsTreeActive("game", "pause_tree") {
		t.Fatal("escape did not open pause_tree")
	}
	if got := f.activeControl(t, "pause_tree"); got != "resume" {
		t.Errorf("focused = %q, want resume", got)
	}

	f.tap(t, key.KeyEscape)
	if f.mgr.IsTreeActive("game", "pause_tree") {
		t.Error("escape at root did not close pause_tree")
	}
}

func TestEscapeWithoutDefaultTree(t *testing.T) {
	f := newFixture(t)
	l := f.mgr.ActionList()
	l.DefaultTree = ""
	if err := f.mgr.SetActionList(l); err != nil {
		t.Fatal(err)
	}
	f.tap(t, key.KeyEscape)
	if f.mgr.IsMenuTreeActive() {
		t.Error("escape opened a tree without a default")
	}

	l.DefaultTree = "not_a_tree"
	f.mgr.SetActionList(l)
	f.tap(t, key.KeyEscape)
	if f.mgr.IsMenuTreeActive() {
		t.Error("escape opened a tree for an unknown default")
	}
}

func TestToggleShortcut(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyTab)
	if !f.mgr.IsTreeActive("game", "pause_tree") {
		t.Fatal("toggle did not open pause_tree")
	}
	f.tap(t, key.KeyDown)
	f.tap(t, key.KeyTab)
	if f.mgr.IsTreeActive("game", "pause_tree") {
		t.Error("toggle did not close pause_tree")
	}
}

func TestCascadeWithoutTreeDoesNothing(t *testing.T) {
	f := newFixture(t)
	for _, k := range []key.Key{key.KeyDown, key.KeyEnter, key.KeyBackspace, key.KeyE} {
		f.tap(t, k)
	}
	if f.mgr.IsMenuTreeActive() || f.mgr.IsInterfaceActive() {
		t.Error("cascade opened a tree")
	}
	if f.sched.Pending() != 0 {
		t.Error("scroll armed without a tree")
	}
}

func TestCascadeNavigation(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)

	f.tap(t, key.KeyDown)
	if got := f.activeControl(t, "pause_tree"); got != "options" {
		t.Fatalf("focused = %q, want options", got)
	}
	f.tap(t, key.KeyDown)
	if got := f.activeControl(t, "pause_tree"); got != "quit" {
		t.Fatalf("focused = %q, want quit (locked is disabled)", got)
	}
	f.tap(t, key.KeyUp)

	f.tap(t, key.KeyEnter)
	if got := f.currentMenu(t, "pause_tree"); got != "options_menu" {
		t.Fatalf("current menu = %q, want options_menu", got)
	}
	if got := f.activeControl(t, "pause_tree"); got != "video" {
		t.Errorf("focused = %q, want video", got)
	}

	// Back acts on release only.
	f.send(t, input.KeyDown(int(key.KeyBackspace)))
	if got := f.currentMenu(t, "pause_tree"); got != "options_menu" {
		t.Fatalf("back press moved to %q", got)
	}
	f.send(t, input.KeyUp(int(key.KeyBackspace)))
	if got := f.currentMenu(t, "pause_tree"); got != "pause_menu" {
		t.Errorf("current menu = %q, want pause_menu", got)
	}
}

func TestTabSwitchesSiblingMenus(t *testing.T) {
	f := newFixture(t)
	if err := f.mgr.ActivateTree("game", "options_tree"); err != nil {
		t.Fatal(err)
	}

	f.tap(t, key.KeyE)
	if got := f.currentMenu(t, "options_tree"); got != "audio_menu" {
		t.Fatalf("after tab right current = %q, want audio_menu", got)
	}
	f.tap(t, key.KeyQ)
	if got := f.currentMenu(t, "options_tree"); got != "options_menu" {
		t.Fatalf("after tab left current = %q, want options_menu", got)
	}
	tr, _ := f.mgr.GetTree("game", "options_tree")
	if tr.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1 (tabs replace)", tr.Depth())
	}
}

func TestControlActions(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)

	// to_menu then to_tree: the source tree closes.
	f.tap(t, key.KeyDown)
	f.tap(t, key.KeyEnter)
	f.tap(t, key.KeyDown)
	f.tap(t, key.KeyEnter)
	if f.mgr.IsTreeActive("game", "pause_tree") {
		t.Error("pause_tree still active after to_tree")
	}
	if !f.mgr.IsTreeActive("game", "options_tree") {
		t.Fatal("options_tree not active after to_tree")
	}

	// back at the root closes the tree.
	f.tap(t, key.KeyDown)
	if got := f.activeControl(t, "options_tree"); got != "back" {
		t.Fatalf("focused = %q, want back", got)
	}
	f.tap(t, key.KeyEnter)
	if f.mgr.IsTreeActive("game", "options_tree") {
		t.Error("back control at root did not close options_tree")
	}

	// quit is an outward event.
	f.tap(t, key.KeyEscape)
	mn, err := f.mgr.GetActiveMenu("game", "pause_tree")
	if err != nil {
		t.Fatal(err)
	}
	if err := mn.SetActiveControl("quit"); err != nil {
		t.Fatal(err)
	}
	f.tap(t, key.KeyEnter)
	var quit bool
	for _, e := range f.outward {
		if e.Type == event.TypeQuit && e.Control == "quit" {
			quit = true
		}
	}
	if !quit {
		t.Errorf("no quit event in %v", f.outward)
	}
}

func TestMouseSelectAndHover(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)
	f.mgr.Transform()

	// Controls are centred at x 50 inside the menu at (10, 10).
	f.send(t, input.MouseMove(60, 40))
	if got := f.activeControl(t, "pause_tree"); got != "options" {
		t.Fatalf("hover focused = %q, want options", got)
	}
	if f.actions.LastDevice() != input.DeviceMouse {
		t.Errorf("LastDevice() = %v, want mouse", f.actions.LastDevice())
	}

	f.click(t, 60, 20)
	if f.mgr.IsTreeActive("game", "pause_tree") {
		t.Error("clicking resume did not close pause_tree")
	}
}

func TestActivateTreeTwiceIsCritical(t *testing.T) {
	f := newFixture(t)
	if err := f.mgr.ActivateTree("game", "pause_tree"); err != nil {
		t.Fatal(err)
	}
	err := f.mgr.ActivateTree("game", "pause_tree")
	if !critical.Is(err) || !errors.Is(err, ErrTreeAlreadyActive) {
		t.Fatalf("second ActivateTree() error = %v, want critical ErrTreeAlreadyActive", err)
	}

	f.mgr.ClearActiveTrees()
	if f.mgr.IsMenuTreeActive() {
		t.Fatal("ClearActiveTrees() left a tree active")
	}
	if err := f.mgr.ActivateTree("game", "pause_tree"); err != nil {
		t.Errorf("ActivateTree() after clear error = %v", err)
	}
}

func TestLookupFailuresAreCritical(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"GetMenu", func() error { _, err := f.mgr.GetMenu("game", "zzz"); return err }, ErrMenuNotFound},
		{"GetMenu group", func() error { _, err := f.mgr.GetMenu("zzz", "pause_menu"); return err }, ErrGroupNotFound},
		{"GetTree", func() error { _, err := f.mgr.GetTree("game", "zzz"); return err }, ErrTreeNotFound},
		{"GetActiveMenu", func() error { _, err := f.mgr.GetActiveMenu("game", "pause_tree"); return err }, ErrTreeNotActive},
		{"ActivateTree", func() error { return f.mgr.ActivateTree("game", "zzz") }, ErrTreeNotFound},
		{"DeactivateTree", func() error { return f.mgr.DeactivateTree("game", "pause_tree") }, ErrTreeNotActive},
		{"UnloadGroup", func() error { return f.mgr.UnloadGroup("zzz") }, ErrGroupNotFound},
		{"SetCurrentGroup", func() error { return f.mgr.SetCurrentGroup("zzz") }, ErrGroupNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !critical.Is(err) {
				t.Fatalf("error = %v, want critical", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModalTreeStarvesInterface(t *testing.T) {
	f := newFixture(t)
	if err := f.mgr.ActivateTree("game", "hud_tree"); err != nil {
		t.Fatal(err)
	}
	hud, _ := f.mgr.GetMenu("game", "hud_menu")
	if hud.Phase() != PhaseIn {
		t.Fatalf("hud phase = %v, want in", hud.Phase())
	}

	if err := f.mgr.ActivateTree("game", "pause_tree"); err != nil {
		t.Fatal(err)
	}
	f.mgr.Update(time.Second)
	if hud.Phase() != PhaseIn {
		t.Errorf("hud updated while pause_tree active: phase = %v", hud.Phase())
	}

	var c recordCanvas
	f.mgr.Render(&c)
	for _, name := range c.menus {
		if name == "hud_menu" {
			t.Error("hud rendered while pause_tree active")
		}
	}

	if err := f.mgr.DeactivateTree("game", "pause_tree"); err != nil {
		t.Fatal(err)
	}
	f.mgr.Update(time.Second)
	if hud.Phase() != PhaseShown {
		t.Errorf("hud phase = %v after pause closed, want shown", hud.Phase())
	}
	if got := len(f.mgr.ActiveInterfaceTrees()); got != 1 {
		t.Errorf("ActiveInterfaceTrees() = %d, want 1", got)
	}
}

func TestInputBlockedDuringTransition(t *testing.T) {
	f := newFixture(t)
	f.mgr.ActivateTree("game", "hud_tree")
	f.mgr.Update(10 * time.Millisecond)
	if !f.mgr.Blocked() || f.actions.ActionEnabled() {
		t.Fatalf("Blocked() = %v, ActionEnabled() = %v during transition", f.mgr.Blocked(), f.actions.ActionEnabled())
	}

	f.tap(t, key.KeyEscape)
	if f.mgr.IsMenuTreeActive() {
		t.Error("escape handled while blocked")
	}

	f.mgr.Update(time.Second)
	if f.mgr.Blocked() || !f.actions.ActionEnabled() {
		t.Fatal("input still blocked after transition")
	}
	f.tap(t, key.KeyEscape)
	if !f.mgr.IsTreeActive("game", "pause_tree") {
		t.Error("escape ignored after transition")
	}
}

func TestTransitionKeepsHostDisabledActions(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled by host", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.actions.EnableAction(tt.enabled)

			f.mgr.ActivateTree("game", "hud_tree")
			f.mgr.Update(10 * time.Millisecond)
			if !f.mgr.Blocked() || f.actions.ActionEnabled() {
				t.Fatalf("Blocked() = %v, ActionEnabled() = %v during transition", f.mgr.Blocked(), f.actions.ActionEnabled())
			}

			f.mgr.Update(time.Second)
			if f.mgr.Blocked() {
				t.Fatal("still blocked after the transition")
			}
			if got := f.actions.ActionEnabled(); got != tt.enabled {
				t.Errorf("ActionEnabled() after transition = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestScrollRepeat(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)

	f.send(t, input.KeyDown(int(key.KeyDown)))
	if got := f.activeControl(t, "pause_tree"); got != "options" {
		t.Fatalf("focused = %q, want options", got)
	}
	if f.mgr.Scrolling() != event.TypeDown {
		t.Fatalf("Scrolling() = %v, want down", f.mgr.Scrolling())
	}

	// 300ms start delay from the action list.
	if n := f.sched.Advance(299 * time.Millisecond); n != 0 {
		t.Fatalf("fired %d before the start delay", n)
	}
	f.sched.Advance(time.Millisecond)
	f.pump(t)
	if got := f.activeControl(t, "pause_tree"); got != "quit" {
		t.Fatalf("after first repeat focused = %q, want quit", got)
	}
	f.sched.Advance(50 * time.Millisecond)
	f.pump(t)
	if got := f.activeControl(t, "pause_tree"); got != "resume" {
		t.Fatalf("after second repeat focused = %q, want resume", got)
	}

	// Releasing another direction leaves the repeat armed.
	f.send(t, input.KeyUp(int(key.KeyUp)))
	if f.mgr.Scrolling() != event.TypeDown {
		t.Fatal("release of up cancelled the down repeat")
	}

	f.send(t, input.KeyUp(int(key.KeyDown)))
	if f.mgr.Scrolling() != event.TypeNone || f.sched.Pending() != 0 {
		t.Fatal("release did not cancel the repeat")
	}
	f.sched.Advance(time.Second)
	if f.queue.Len() != 0 {
		t.Errorf("queue has %d events after cancel", f.queue.Len())
	}
}

func TestScrollStopsWhenControllerRemoved(t *testing.T) {
	tests := []struct {
		name string
		hold input.Event
	}{
		{"stick", input.PadAxis(0, int(pad.AxisLeftY), 30000)},
		{"dpad", input.PadDown(0, int(pad.ButtonDpadDown))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.tap(t, key.KeyEscape)

			f.send(t, tt.hold)
			if f.mgr.Scrolling() != event.TypeDown {
				t.Fatalf("Scrolling() = %v, want down", f.mgr.Scrolling())
			}

			// Another controller going away leaves the repeat alone.
			f.send(t, input.PadRemoved(1))
			if f.mgr.Scrolling() != event.TypeDown {
				t.Fatal("removing an idle controller cancelled the repeat")
			}

			f.send(t, input.PadRemoved(0))
			if f.mgr.Scrolling() != event.TypeNone || f.sched.Pending() != 0 {
				t.Fatalf("Scrolling() = %v with %d pending after removal, want none", f.mgr.Scrolling(), f.sched.Pending())
			}
			f.sched.Advance(5 * time.Second)
			if f.queue.Len() != 0 {
				t.Errorf("queue has %d repeats after removal, want 0", f.queue.Len())
			}
		})
	}
}

func TestStaleRepeatIgnored(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)

	stale := event.Nav(event.TypeDown, input.PressDown, input.DeviceKeyboard)
	stale.Repeat = true
	if err := f.mgr.HandleMenuEvent(stale); err != nil {
		t.Fatal(err)
	}
	if got := f.activeControl(t, "pause_tree"); got != "resume" {
		t.Errorf("stale repeat moved focus to %q", got)
	}
}

func TestClearActiveTreesCancelsScroll(t *testing.T) {
	f := newFixture(t)
	f.tap(t, key.KeyEscape)
	f.send(t, input.KeyDown(int(key.KeyDown)))
	f.mgr.ClearActiveTrees()
	if f.sched.Pending() != 0 {
		t.Error("ClearActiveTrees() left the repeat armed")
	}
}

func TestKeyBindCapture(t *testing.T) {
	f := newFixture(t)
	if err := f.mgr.LoadGroup(f.fsys, "binds", "menus/binds.toml"); err != nil {
		t.Fatal(err)
	}
	if err := f.mgr.ActivateTree("binds", "controls_tree"); err != nil {
		t.Fatal(err)
	}
	mn, _ := f.mgr.GetActiveMenu("binds", "controls_tree")
	jump, _ := mn.Control("jump")
	kb := jump.Behavior().(*smart.KeyBindBehavior)

	// Escape cancels a capture without closing the tree.
	f.tap(t, key.KeyEnter)
	if !jump.Capturing() {
		t.Fatal("select did not start capture")
	}
	f.tap(t, key.KeyEscape)
	if jump.Capturing() {
		t.Fatal("escape did not cancel capture")
	}
	if !f.mgr.IsTreeActive("binds", "controls_tree") {
		t.Fatal("escape during capture closed the tree")
	}

	f.tap(t, key.KeyEnter)
	f.tap(t, key.KeyK)
	if jump.Capturing() {
		t.Fatal("capture still open after a release")
	}
	if kb.Changed() != input.DeviceKeyboard {
		t.Errorf("Changed() = %v, want keyboard", kb.Changed())
	}
	if got := f.actions.WasAction(input.KeyDown(int(key.KeyK)), "Jump"); got != input.PressDown {
		t.Errorf("WasAction(K, Jump) = %v, want down", got)
	}
	if got := kb.Value(); got != "K" {
		t.Errorf("Value() = %q, want K", got)
	}
}

func TestSliderTakesHorizontalScroll(t *testing.T) {
	f := newFixture(t)
	f.mgr.LoadGroup(f.fsys, "binds", "menus/binds.toml")
	f.mgr.ActivateTree("binds", "controls_tree")
	f.tap(t, key.KeyDown)

	mn, _ := f.mgr.GetActiveMenu("binds", "controls_tree")
	sfx, _ := mn.Control("sfx")
	sl := sfx.Behavior().(*smart.SliderBehavior)

	f.send(t, input.KeyDown(int(key.KeyRight)))
	f.sched.Advance(300 * time.Millisecond)
	f.pump(t)
	f.send(t, input.KeyUp(int(key.KeyRight)))
	if sl.Number() != 3 {
		t.Errorf("slider = %v, want 3", sl.Number())
	}
	if got := f.activeControl(t, "controls_tree"); got != "sfx" {
		t.Errorf("focus moved to %q", got)
	}
}

func TestGroupReloadAndUnload(t *testing.T) {
	f := newFixture(t)
	f.mgr.ActivateTree("game", "pause_tree")

	if err := f.mgr.LoadGroup(f.fsys, "game", "menus/game.toml"); err != nil {
		t.Fatal(err)
	}
	if f.mgr.IsMenuTreeActive() {
		t.Error("reload left the old tree active")
	}
	if err := f.mgr.ActivateTree("game", "pause_tree"); err != nil {
		t.Errorf("ActivateTree() after reload error = %v", err)
	}

	if err := f.mgr.UnloadGroup("game"); err != nil {
		t.Fatal(err)
	}
	if f.mgr.CurrentGroup() != "" || f.mgr.IsMenuTreeActive() {
		t.Errorf("after unload current = %q active = %v", f.mgr.CurrentGroup(), f.mgr.IsMenuTreeActive())
	}
}

func TestActionListDefaults(t *testing.T) {
	f := newFixture(t)
	l := f.mgr.ActionList()
	if l.DefaultTree != "pause_tree" || l.Actions.Select != "Select" || l.Actions.TabRight != "Tab Right" {
		t.Errorf("ActionList() = %+v", l)
	}
	p, err := l.ScrollParam()
	if err != nil || p.Start != 300*time.Millisecond || p.Repeat != 50*time.Millisecond {
		t.Errorf("ScrollParam() = %v, %v", p, err)
	}

	f.fsys.AddFile("bad.toml", "[scroll]\nstartDelay = \"never\"\n")
	if err := f.mgr.LoadActionList(f.fsys, "bad.toml"); !errors.Is(err, ErrMalformedConfig) {
		t.Errorf("LoadActionList(bad) error = %v, want ErrMalformedConfig", err)
	}
}
