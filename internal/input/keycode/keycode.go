// Package keycode maps the component-id strings used in binding
// configuration ("A", "LEFT MOUSE", "L STICK UP") to device-native codes.
//
// Each device class has its own table. Tables are built once and are
// read-only afterwards, so they may be shared freely.
package keycode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
	"github.com/dshills/menustorm/internal/input/pad"
)

// Map is a bidirectional id <-> code table for one device class.
type Map struct {
	device input.Device
	byName map[string]int
	byCode map[int]string
}

// New creates an empty map for device.
func New(device input.Device) *Map {
	return &Map{
		device: device,
		byName: make(map[string]int),
		byCode: make(map[int]string),
	}
}

// Device returns the device class served by the map.
func (m *Map) Device() input.Device {
	return m.device
}

// Add registers name for code. Names are case-insensitive.
// The first name registered for a code is the one Name returns.
func (m *Map) Add(name string, code int) {
	name = normalize(name)
	m.byName[name] = code
	if _, ok := m.byCode[code]; !ok {
		m.byCode[code] = name
	}
}

// Code returns the native code for a component id.
func (m *Map) Code(name string) (int, bool) {
	code, ok := m.byName[normalize(name)]
	return code, ok
}

// Name returns the canonical component id for a native code.
func (m *Map) Name(code int) (string, bool) {
	name, ok := m.byCode[code]
	return name, ok
}

// Len returns the number of registered ids.
func (m *Map) Len() int {
	return len(m.byName)
}

// Names returns every registered id in sorted order.
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.byName))
	for name := range m.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Keyboard returns the keyboard table.
func Keyboard() *Map {
	m := New(input.DeviceKeyboard)
	for k := key.KeyA; k <= key.KeyZ; k++ {
		m.Add(k.String(), int(k))
	}
	for k := key.Key0; k <= key.Key9; k++ {
		m.Add(k.String(), int(k))
	}
	for k := key.KeyF1; k <= key.KeyF12; k++ {
		m.Add(k.String(), int(k))
	}
	for k := key.KeyKP0; k <= key.KeyKP9; k++ {
		m.Add(fmt.Sprintf("KEYPAD %d", k-key.KeyKP0), int(k))
	}

	named := []struct {
		name string
		code key.Key
	}{
		{"UP", key.KeyUp},
		{"DOWN", key.KeyDown},
		{"LEFT", key.KeyLeft},
		{"RIGHT", key.KeyRight},
		{"RETURN", key.KeyEnter},
		{"ENTER", key.KeyEnter},
		{"ESCAPE", key.KeyEscape},
		{"SPACE", key.KeySpace},
		{"TAB", key.KeyTab},
		{"BACKSPACE", key.KeyBackspace},
		{"DELETE", key.KeyDelete},
		{"INSERT", key.KeyInsert},
		{"HOME", key.KeyHome},
		{"END", key.KeyEnd},
		{"PAGE UP", key.KeyPageUp},
		{"PAGE DOWN", key.KeyPageDown},
		{"PAUSE", key.KeyPause},
		{"PRINT SCREEN", key.KeyPrintScreen},
		{"SCROLL LOCK", key.KeyScrollLock},
		{"NUM LOCK", key.KeyNumLock},
		{"CAPS LOCK", key.KeyCapsLock},
		{"KEYPAD +", key.KeyKPAdd},
		{"KEYPAD -", key.KeyKPSubtract},
		{"KEYPAD *", key.KeyKPMultiply},
		{"KEYPAD /", key.KeyKPDivide},
		{"KEYPAD .", key.KeyKPDecimal},
		{"KEYPAD ENTER", key.KeyKPEnter},
		{"LEFT SHIFT", key.KeyLeftShift},
		{"RIGHT SHIFT", key.KeyRightShift},
		{"LEFT CTRL", key.KeyLeftCtrl},
		{"RIGHT CTRL", key.KeyRightCtrl},
		{"LEFT ALT", key.KeyLeftAlt},
		{"RIGHT ALT", key.KeyRightAlt},
		{"-", key.KeyMinus},
		{"=", key.KeyEqual},
		{",", key.KeyComma},
		{".", key.KeyPeriod},
		{"/", key.KeySlash},
		{";", key.KeySemicolon},
		{"'", key.KeyQuote},
		{"[", key.KeyBracketLeft},
		{"]", key.KeyBracketRight},
		{"\\", key.KeyBackslash},
		{"`", key.KeyBackquote},
	}
	for _, n := range named {
		m.Add(n.name, int(n.code))
	}
	return m
}

// Mouse returns the mouse button table.
func Mouse() *Map {
	m := New(input.DeviceMouse)
	m.Add("LEFT MOUSE", int(mouse.ButtonLeft))
	m.Add("MIDDLE MOUSE", int(mouse.ButtonMiddle))
	m.Add("RIGHT MOUSE", int(mouse.ButtonRight))
	m.Add("X1 MOUSE", int(mouse.ButtonX1))
	m.Add("X2 MOUSE", int(mouse.ButtonX2))
	return m
}

// Gamepad returns the gamepad table, including stick pseudo-buttons.
func Gamepad() *Map {
	m := New(input.DeviceGamepad)
	named := []struct {
		name string
		code pad.Button
	}{
		{"A", pad.ButtonA},
		{"B", pad.ButtonB},
		{"X", pad.ButtonX},
		{"Y", pad.ButtonY},
		{"BACK", pad.ButtonBack},
		{"GUIDE", pad.ButtonGuide},
		{"START", pad.ButtonStart},
		{"L STICK", pad.ButtonLeftStick},
		{"R STICK", pad.ButtonRightStick},
		{"L SHOULDER", pad.ButtonLeftShoulder},
		{"R SHOULDER", pad.ButtonRightShoulder},
		{"DPAD UP", pad.ButtonDpadUp},
		{"DPAD DOWN", pad.ButtonDpadDown},
		{"DPAD LEFT", pad.ButtonDpadLeft},
		{"DPAD RIGHT", pad.ButtonDpadRight},
		{"L STICK UP", pad.LStickUp},
		{"L STICK DOWN", pad.LStickDown},
		{"L STICK LEFT", pad.LStickLeft},
		{"L STICK RIGHT", pad.LStickRight},
		{"R STICK UP", pad.RStickUp},
		{"R STICK DOWN", pad.RStickDown},
		{"R STICK LEFT", pad.RStickLeft},
		{"R STICK RIGHT", pad.RStickRight},
		{"L TRIGGER", pad.LTrigger},
		{"R TRIGGER", pad.RTrigger},
	}
	for _, n := range named {
		m.Add(n.name, int(n.code))
	}
	return m
}

// ForDevice returns a fresh built-in table for device, or nil for DeviceNull.
func ForDevice(device input.Device) *Map {
	switch device {
	case input.DeviceKeyboard:
		return Keyboard()
	case input.DeviceMouse:
		return Mouse()
	case input.DeviceGamepad:
		return Gamepad()
	default:
		return nil
	}
}
