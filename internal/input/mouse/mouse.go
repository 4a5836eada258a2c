// Package mouse defines device-native mouse button codes.
package mouse

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonX1 is the back navigation button (mouse button 4).
	ButtonX1
	// ButtonX2 is the forward navigation button (mouse button 5).
	ButtonX2
)

// Buttons lists every real button.
var Buttons = []Button{ButtonLeft, ButtonMiddle, ButtonRight, ButtonX1, ButtonX2}

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	default:
		return "none"
	}
}

// Position is a cursor position in screen space.
type Position struct {
	X, Y float64
}
