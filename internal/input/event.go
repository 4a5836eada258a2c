package input

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Device identifies an input device class.
type Device uint8

const (
	// DeviceNull means no device has been used yet.
	DeviceNull Device = iota
	// DeviceKeyboard is the keyboard.
	DeviceKeyboard
	// DeviceMouse is the mouse.
	DeviceMouse
	// DeviceGamepad is any game controller.
	DeviceGamepad
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return "null"
	}
}

// Devices lists the device classes that carry bindings.
var Devices = []Device{DeviceKeyboard, DeviceMouse, DeviceGamepad}

// PressState is the edge reported for an action.
type PressState uint8

const (
	// PressIdle means the event did not trigger the action.
	PressIdle PressState = iota
	// PressDown is the press edge.
	PressDown
	// PressUp is the release edge.
	PressUp
)

// String returns the press state name.
func (p PressState) String() string {
	switch p {
	case PressDown:
		return "down"
	case PressUp:
		return "up"
	default:
		return "idle"
	}
}

// Kind is the raw event type.
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyDown
	KindKeyUp
	KindMouseDown
	KindMouseUp
	KindMouseMove
	KindPadDown
	KindPadUp
	KindPadAxis
	KindPadAdded
	KindPadRemoved
)

var kindNames = [...]string{
	KindNone:       "none",
	KindKeyDown:    "key-down",
	KindKeyUp:      "key-up",
	KindMouseDown:  "mouse-down",
	KindMouseUp:    "mouse-up",
	KindMouseMove:  "mouse-move",
	KindPadDown:    "pad-down",
	KindPadUp:      "pad-up",
	KindPadAxis:    "pad-axis",
	KindPadAdded:   "pad-added",
	KindPadRemoved: "pad-removed",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Device returns the device class that produces events of this kind.
func (k Kind) Device() Device {
	switch k {
	case KindKeyDown, KindKeyUp:
		return DeviceKeyboard
	case KindMouseDown, KindMouseUp, KindMouseMove:
		return DeviceMouse
	case KindPadDown, KindPadUp, KindPadAxis, KindPadAdded, KindPadRemoved:
		return DeviceGamepad
	default:
		return DeviceNull
	}
}

// IsButton reports whether the kind is a button press or release.
func (k Kind) IsButton() bool {
	switch k {
	case KindKeyDown, KindKeyUp, KindMouseDown, KindMouseUp, KindPadDown, KindPadUp:
		return true
	}
	return false
}

// Press returns the press edge carried by a button kind.
func (k Kind) Press() PressState {
	switch k {
	case KindKeyDown, KindMouseDown, KindPadDown:
		return PressDown
	case KindKeyUp, KindMouseUp, KindPadUp:
		return PressUp
	default:
		return PressIdle
	}
}

// Event is a single raw input event.
type Event struct {
	Kind Kind

	// Code is the device-native code: a key.Key, mouse.Button or pad.Button.
	Code int

	// Repeat marks keyboard auto-repeat.
	Repeat bool

	// Pad is the controller instance index for gamepad events.
	Pad int

	// Axis and Value describe gamepad axis motion.
	Axis  int
	Value int16

	// X and Y are the cursor position for mouse events.
	X, Y float64

	// Seq is unique per constructed event. Zero means unsequenced.
	Seq uint64

	Timestamp time.Time
}

// Device returns the device class of the event.
func (e Event) Device() Device {
	return e.Kind.Device()
}

// String returns a compact description for logs.
func (e Event) String() string {
	switch e.Kind.Device() {
	case DeviceKeyboard:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Code)
	case DeviceMouse:
		if e.Kind == KindMouseMove {
			return fmt.Sprintf("%s(%.0f,%.0f)", e.Kind, e.X, e.Y)
		}
		return fmt.Sprintf("%s(%d @ %.0f,%.0f)", e.Kind, e.Code, e.X, e.Y)
	case DeviceGamepad:
		if e.Kind == KindPadAxis {
			return fmt.Sprintf("%s(pad %d axis %d = %d)", e.Kind, e.Pad, e.Axis, e.Value)
		}
		return fmt.Sprintf("%s(pad %d code %d)", e.Kind, e.Pad, e.Code)
	default:
		return e.Kind.String()
	}
}

var seq atomic.Uint64

func newEvent(kind Kind) Event {
	return Event{Kind: kind, Seq: seq.Add(1), Timestamp: time.Now()}
}

// KeyDown creates a key press event.
func KeyDown(code int) Event {
	ev := newEvent(KindKeyDown)
	ev.Code = code
	return ev
}

// KeyRepeat creates an auto-repeat key press event.
func KeyRepeat(code int) Event {
	ev := KeyDown(code)
	ev.Repeat = true
	return ev
}

// KeyUp creates a key release event.
func KeyUp(code int) Event {
	ev := newEvent(KindKeyUp)
	ev.Code = code
	return ev
}

// MouseDown creates a mouse button press at (x, y).
func MouseDown(button int, x, y float64) Event {
	ev := newEvent(KindMouseDown)
	ev.Code, ev.X, ev.Y = button, x, y
	return ev
}

// MouseUp creates a mouse button release at (x, y).
func MouseUp(button int, x, y float64) Event {
	ev := newEvent(KindMouseUp)
	ev.Code, ev.X, ev.Y = button, x, y
	return ev
}

// MouseMove creates a cursor motion event.
func MouseMove(x, y float64) Event {
	ev := newEvent(KindMouseMove)
	ev.X, ev.Y = x, y
	return ev
}

// PadDown creates a gamepad button press.
func PadDown(pad, button int) Event {
	ev := newEvent(KindPadDown)
	ev.Pad, ev.Code = pad, button
	return ev
}

// PadUp creates a gamepad button release.
func PadUp(pad, button int) Event {
	ev := newEvent(KindPadUp)
	ev.Pad, ev.Code = pad, button
	return ev
}

// PadAxis creates a gamepad axis motion event.
func PadAxis(pad, axis int, value int16) Event {
	ev := newEvent(KindPadAxis)
	ev.Pad, ev.Axis, ev.Value = pad, axis, value
	return ev
}

// PadAdded reports a controller connection.
func PadAdded(pad int) Event {
	ev := newEvent(KindPadAdded)
	ev.Pad = pad
	return ev
}

// PadRemoved reports a controller disconnection.
func PadRemoved(pad int) Event {
	ev := newEvent(KindPadRemoved)
	ev.Pad = pad
	return ev
}
