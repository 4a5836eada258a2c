// Package pad defines device-native gamepad codes.
//
// Physical buttons follow the standard controller layout. Analog sticks and
// triggers are additionally exposed as pseudo-buttons (LStickUp, LTrigger,
// ...) that the action layer presses and releases when an axis crosses
// StickThreshold.
package pad

// Button is a gamepad button or stick pseudo-button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight

	// Pseudo-buttons driven by axis motion.
	LStickUp
	LStickDown
	LStickLeft
	LStickRight
	RStickUp
	RStickDown
	RStickLeft
	RStickRight
	LTrigger
	RTrigger

	buttonCount
)

var buttonNames = [...]string{
	ButtonNone:          "none",
	ButtonA:             "a",
	ButtonB:             "b",
	ButtonX:             "x",
	ButtonY:             "y",
	ButtonBack:          "back",
	ButtonGuide:         "guide",
	ButtonStart:         "start",
	ButtonLeftStick:     "left-stick",
	ButtonRightStick:    "right-stick",
	ButtonLeftShoulder:  "left-shoulder",
	ButtonRightShoulder: "right-shoulder",
	ButtonDpadUp:        "dpad-up",
	ButtonDpadDown:      "dpad-down",
	ButtonDpadLeft:      "dpad-left",
	ButtonDpadRight:     "dpad-right",
	LStickUp:            "lstick-up",
	LStickDown:          "lstick-down",
	LStickLeft:          "lstick-left",
	LStickRight:         "lstick-right",
	RStickUp:            "rstick-up",
	RStickDown:          "rstick-down",
	RStickLeft:          "rstick-left",
	RStickRight:         "rstick-right",
	LTrigger:            "ltrigger",
	RTrigger:            "rtrigger",
}

// String returns the button name.
func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}
	return "unknown"
}

// IsPseudo reports whether b is driven by an axis rather than a switch.
func (b Button) IsPseudo() bool {
	return b >= LStickUp && b <= RTrigger
}

// Axis is an analog axis.
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight

	AxisCount
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisLeftX:
		return "left-x"
	case AxisLeftY:
		return "left-y"
	case AxisRightX:
		return "right-x"
	case AxisRightY:
		return "right-y"
	case AxisTriggerLeft:
		return "trigger-left"
	case AxisTriggerRight:
		return "trigger-right"
	default:
		return "unknown"
	}
}

// StickThreshold is the deadzone boundary on the int16 axis range.
// Values with magnitude above it count as pressed.
const StickThreshold int16 = 10000

// Directions returns the pseudo-buttons for the negative and positive
// halves of axis. Triggers only have a positive half; neg is ButtonNone.
// Y axes grow downward, so negative Y is up.
func Directions(axis Axis) (neg, pos Button) {
	switch axis {
	case AxisLeftX:
		return LStickLeft, LStickRight
	case AxisLeftY:
		return LStickUp, LStickDown
	case AxisRightX:
		return RStickLeft, RStickRight
	case AxisRightY:
		return RStickUp, RStickDown
	case AxisTriggerLeft:
		return ButtonNone, LTrigger
	case AxisTriggerRight:
		return ButtonNone, RTrigger
	default:
		return ButtonNone, ButtonNone
	}
}

// Zone classifies an axis value against StickThreshold:
// -1 past the negative threshold, +1 past the positive one, 0 in the deadzone.
func Zone(value int16) int {
	switch {
	case value > StickThreshold:
		return 1
	case value < -StickThreshold:
		return -1
	default:
		return 0
	}
}

// FromFloat scales a [-1, 1] axis reading to the int16 range.
func FromFloat(v float64) int16 {
	switch {
	case v >= 1:
		return 32767
	case v <= -1:
		return -32768
	default:
		return int16(v * 32767)
	}
}
