package event

import (
	"fmt"
	"strings"

	"github.com/dshills/menustorm/internal/event/topic"
	"github.com/dshills/menustorm/internal/input"
)

// Type identifies a dispatched menu event.
type Type int

// Navigation events.
const (
	TypeNone Type = iota
	TypeSelect
	TypeBack
	TypeUp
	TypeDown
	TypeLeft
	TypeRight
	TypeTabLeft
	TypeTabRight
	TypeEscape
	TypeToggle
	TypeMouseMove
)

// Lifecycle events.
const (
	TypeControlStateChange Type = iota + 100
	TypeSelectExecute
	TypeSetActiveControl
	TypeReactivate
	TypeTransitionIn
	TypeTransitionOut
)

// Outward events.
const (
	TypeToTree Type = iota + 200
	TypeToMenu
	TypeClose
	TypeGameStateChange
	TypeQuit
	TypeControlExecuted
)

var topics = map[Type]topic.Topic{
	TypeNone:               "none",
	TypeSelect:             "menu.nav.select",
	TypeBack:               "menu.nav.back",
	TypeUp:                 "menu.nav.up",
	TypeDown:               "menu.nav.down",
	TypeLeft:               "menu.nav.left",
	TypeRight:              "menu.nav.right",
	TypeTabLeft:            "menu.nav.tableft",
	TypeTabRight:           "menu.nav.tabright",
	TypeEscape:             "menu.nav.escape",
	TypeToggle:             "menu.nav.toggle",
	TypeMouseMove:          "menu.nav.mousemove",
	TypeControlStateChange: "control.state",
	TypeSelectExecute:      "control.execute",
	TypeSetActiveControl:   "control.setactive",
	TypeReactivate:         "control.reactivate",
	TypeTransitionIn:       "menu.transition.in",
	TypeTransitionOut:      "menu.transition.out",
	TypeToTree:             "menu.totree",
	TypeToMenu:             "menu.tomenu",
	TypeClose:              "menu.close",
	TypeGameStateChange:    "game.state",
	TypeQuit:               "game.quit",
	TypeControlExecuted:    "control.executed",
}

// Topic returns the dotted topic for the type.
func (t Type) Topic() topic.Topic {
	if tp, ok := topics[t]; ok {
		return tp
	}
	return topic.Topic(fmt.Sprintf("unknown.%d", int(t)))
}

// String returns the topic as a string.
func (t Type) String() string {
	return t.Topic().String()
}

// ParseType returns the type whose topic is s.
func ParseType(s string) (Type, bool) {
	for t, tp := range topics {
		if tp.String() == s && t != TypeNone {
			return t, true
		}
	}
	return TypeNone, false
}

// IsNavigation reports whether the type is a directional or confirm event
// produced from user input.
func (t Type) IsNavigation() bool {
	return t > TypeNone && t <= TypeMouseMove
}

// IsScroll reports whether holding the action should repeat the event.
func (t Type) IsScroll() bool {
	switch t {
	case TypeUp, TypeDown, TypeLeft, TypeRight:
		return true
	}
	return false
}

// Event is one dispatched menu event. Fields that do not apply to a type
// are left zero.
type Event struct {
	Type   Type
	Press  input.PressState
	Device input.Device

	// Repeat marks events posted by the scroll repeat timer.
	Repeat bool

	Group   string
	Tree    string
	Menu    string
	Control string

	// Target names the destination of ToTree, ToMenu and GameStateChange.
	Target string

	// Replace makes ToMenu swap the current menu instead of pushing.
	Replace bool

	X, Y float64

	// State is the control state for ControlStateChange.
	State int
}

// New creates an event of the given type.
func New(t Type) Event {
	return Event{Type: t}
}

// Nav creates a navigation event.
func Nav(t Type, press input.PressState, device input.Device) Event {
	return Event{Type: t, Press: press, Device: device}
}

// String returns a compact description for logs.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	if e.Press != input.PressIdle {
		fmt.Fprintf(&b, " press=%s", e.Press)
	}
	if e.Repeat {
		b.WriteString(" repeat")
	}
	if e.Tree != "" {
		fmt.Fprintf(&b, " tree=%s", e.Tree)
	}
	if e.Menu != "" {
		fmt.Fprintf(&b, " menu=%s", e.Menu)
	}
	if e.Control != "" {
		fmt.Fprintf(&b, " control=%s", e.Control)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " target=%s", e.Target)
	}
	return b.String()
}
