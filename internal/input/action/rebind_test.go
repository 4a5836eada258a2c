package action

import (
	"strings"
	"testing"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/pad"
	"github.com/tidwall/gjson"
)

func TestResetActionRoundTrip(t *testing.T) {
	memfs := loader.NewMemFS()
	memfs.AddFile("/bindings.json", testBindings)

	m := NewManager()
	if err := m.LoadBindingsFile(memfs, "/bindings.json"); err != nil {
		t.Fatalf("LoadBindingsFile failed: %v", err)
	}

	if got := m.ResetAction(input.KeyUp(int(key.KeyJ)), "Left"); got != input.DeviceKeyboard {
		t.Fatalf("ResetAction() = %v, want keyboard", got)
	}
	if !m.Dirty() {
		t.Error("Dirty() = false after rebind")
	}
	if err := m.Save(memfs, "/bindings.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if m.Dirty() {
		t.Error("Dirty() = true after save")
	}

	reloaded := NewManager()
	if err := reloaded.LoadBindingsFile(memfs, "/bindings.json"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	for _, mgr := range []*Manager{m, reloaded} {
		if got := mgr.WasAction(input.KeyDown(int(key.KeyA)), "Left"); got != input.PressIdle {
			t.Errorf("old key A Left = %v, want idle", got)
		}
		if got := mgr.WasAction(input.KeyDown(int(key.KeyJ)), "Left"); got != input.PressDown {
			t.Errorf("new key J Left = %v, want down", got)
		}
		if got := mgr.WasAction(input.KeyDown(int(key.KeyLeft)), "Left"); got != input.PressDown {
			t.Errorf("untouched LEFT binding = %v, want down", got)
		}
	}
}

func TestResetActionPreservesLayout(t *testing.T) {
	m := newTestManager(t)
	m.ResetAction(input.KeyUp(int(key.KeyJ)), "Left")

	doc := string(m.Document())
	want := strings.Replace(testBindings, `{"id": "A", "action": "Left"`, `{"id": "J", "action": "Left"`, 1)
	if doc != want {
		t.Errorf("document layout changed:\n%s", doc)
	}
	if got := gjson.Get(doc, "keyboardMapping.visible.0.default").String(); got != "A" {
		t.Errorf("default = %q, want A", got)
	}
}

func TestResetActionIgnored(t *testing.T) {
	tests := []struct {
		name   string
		ev     input.Event
		action string
	}{
		{"press edge", input.KeyDown(int(key.KeyJ)), "Left"},
		{"not configurable", input.KeyUp(int(key.KeyJ)), "Jump"},
		{"hidden only", input.KeyUp(int(key.KeyJ)), "Escape"},
		{"wrong device", input.PadUp(0, int(pad.ButtonB)), "Left"},
		{"motion", input.MouseMove(1, 1), "Left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			if got := m.ResetAction(tt.ev, tt.action); got != input.DeviceNull {
				t.Errorf("ResetAction() = %v, want null", got)
			}
			if m.Dirty() {
				t.Error("Dirty() = true after ignored rebind")
			}
		})
	}
}

func TestResetActionStick(t *testing.T) {
	m := newTestManager(t)

	m.WasAction(input.PadAxis(0, int(pad.AxisRightY), 30000), "Select")
	release := input.PadAxis(0, int(pad.AxisRightY), 0)
	if got := m.ResetAction(release, "Select"); got != input.DeviceGamepad {
		t.Fatalf("ResetAction() = %v, want gamepad", got)
	}
	if got := m.ComponentIDs(input.DeviceGamepad, "Select"); len(got) != 1 || got[0] != "R STICK DOWN" {
		t.Errorf("ComponentIDs = %v, want [R STICK DOWN]", got)
	}
}

func TestResetToDefault(t *testing.T) {
	m := newTestManager(t)
	m.ResetAction(input.KeyUp(int(key.KeyJ)), "Left")

	changed := m.ResetToDefault("Left")
	if len(changed) != 1 || changed[0] != input.DeviceKeyboard {
		t.Fatalf("ResetToDefault() = %v, want [keyboard]", changed)
	}
	if got := m.WasAction(input.KeyDown(int(key.KeyA)), "Left"); got != input.PressDown {
		t.Errorf("A Left = %v, want down", got)
	}
	if got := m.WasAction(input.KeyDown(int(key.KeyJ)), "Left"); got != input.PressIdle {
		t.Errorf("J Left = %v, want idle", got)
	}
	if got := m.ResetToDefault("Left"); len(got) != 0 {
		t.Errorf("second ResetToDefault() = %v, want none", got)
	}
}

func TestSaveWithoutDocument(t *testing.T) {
	m := NewManager()
	if err := m.Save(loader.NewMemFS(), "/x.json"); err == nil {
		t.Error("Save without document succeeded")
	}
}
