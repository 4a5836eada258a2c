package keycode

import (
	"testing"

	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
	"github.com/dshills/menustorm/internal/input/pad"
)

func TestMapBidirectional(t *testing.T) {
	m := New(input.DeviceKeyboard)
	m.Add("Return", 5)
	m.Add("ENTER", 5)

	if code, ok := m.Code("return"); !ok || code != 5 {
		t.Errorf("Code(return) = %d, %v, want 5, true", code, ok)
	}
	if code, ok := m.Code(" enter "); !ok || code != 5 {
		t.Errorf("Code(enter) = %d, %v, want 5, true", code, ok)
	}
	if name, ok := m.Name(5); !ok || name != "RETURN" {
		t.Errorf("Name(5) = %q, %v, want RETURN, true", name, ok)
	}
	if _, ok := m.Name(6); ok {
		t.Error("Name(6) found, want miss")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if names := m.Names(); len(names) != 2 || names[0] != "ENTER" {
		t.Errorf("Names() = %v, want sorted [ENTER RETURN]", names)
	}
}

func TestKeyboardTable(t *testing.T) {
	m := Keyboard()
	tests := []struct {
		id   string
		want key.Key
	}{
		{"A", key.KeyA},
		{"z", key.KeyZ},
		{"0", key.Key0},
		{"F12", key.KeyF12},
		{"LEFT", key.KeyLeft},
		{"RETURN", key.KeyEnter},
		{"ESCAPE", key.KeyEscape},
		{"KEYPAD 4", key.KeyKP4},
		{"PAGE DOWN", key.KeyPageDown},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			code, ok := m.Code(tt.id)
			if !ok {
				t.Fatalf("Code(%q) missing", tt.id)
			}
			if key.Key(code) != tt.want {
				t.Errorf("Code(%q) = %v, want %v", tt.id, key.Key(code), tt.want)
			}
		})
	}

	if name, _ := m.Name(int(key.KeyEnter)); name != "RETURN" {
		t.Errorf("Name(Enter) = %q, want RETURN", name)
	}
	if m.Device() != input.DeviceKeyboard {
		t.Errorf("Device() = %v", m.Device())
	}
}

func TestMouseTable(t *testing.T) {
	m := Mouse()
	if code, ok := m.Code("LEFT MOUSE"); !ok || mouse.Button(code) != mouse.ButtonLeft {
		t.Errorf("Code(LEFT MOUSE) = %d, %v", code, ok)
	}
	if m.Len() != 5 {
		t.Errorf("Len() = %d, want 5", m.Len())
	}
}

func TestGamepadTable(t *testing.T) {
	m := Gamepad()
	if code, ok := m.Code("L STICK UP"); !ok || pad.Button(code) != pad.LStickUp {
		t.Errorf("Code(L STICK UP) = %d, %v", code, ok)
	}
	if code, ok := m.Code("L STICK"); !ok || pad.Button(code) != pad.ButtonLeftStick {
		t.Errorf("Code(L STICK) = %d, %v", code, ok)
	}
	if name, _ := m.Name(int(pad.RTrigger)); name != "R TRIGGER" {
		t.Errorf("Name(RTrigger) = %q", name)
	}
}

func TestForDevice(t *testing.T) {
	for _, d := range input.Devices {
		m := ForDevice(d)
		if m == nil || m.Device() != d {
			t.Errorf("ForDevice(%v) = %v", d, m)
		}
	}
	if ForDevice(input.DeviceNull) != nil {
		t.Error("ForDevice(null) should be nil")
	}
}
