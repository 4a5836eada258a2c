package smart

import (
	"fmt"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/control"
)

// ToggleBehavior flips between an on and an off label.
type ToggleBehavior struct {
	on, off  string
	value    bool
	onChange string
}

// NewToggle creates a toggle. value must be "on" or "off".
func NewToggle(params map[string]string) (control.Behavior, error) {
	t := &ToggleBehavior{
		on:       params["on"],
		off:      params["off"],
		onChange: params["onchange"],
	}
	if t.on == "" {
		t.on = "On"
	}
	if t.off == "" {
		t.off = "Off"
	}
	switch params["value"] {
	case "", "off":
	case "on":
		t.value = true
	default:
		return nil, fmt.Errorf("toggle value %q: want on or off", params["value"])
	}
	return t, nil
}

// Create implements control.Behavior.
func (t *ToggleBehavior) Create(*control.Control) error { return nil }

// HandleEvent flips on a left or right press.
func (t *ToggleBehavior) HandleEvent(c *control.Control, e event.Event) bool {
	if e.Type != event.TypeLeft && e.Type != event.TypeRight {
		return false
	}
	if e.Press == input.PressDown && !e.Repeat {
		t.flip(c)
	}
	return true
}

// Execute flips the value.
func (t *ToggleBehavior) Execute(c *control.Control) error {
	t.flip(c)
	return nil
}

func (t *ToggleBehavior) flip(c *control.Control) {
	t.value = !t.value
	notify(c, t.onChange, t.Value())
}

// On reports the current value.
func (t *ToggleBehavior) On() bool { return t.value }

// Value returns the label of the current value.
func (t *ToggleBehavior) Value() string {
	if t.value {
		return t.on
	}
	return t.off
}
