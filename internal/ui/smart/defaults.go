package smart

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/ui/control"
)

// DefaultsBehavior restores the default bindings of a list of actions.
type DefaultsBehavior struct {
	rb       Rebinder
	actions  []string
	onChange string
	restored int
}

// NewDefaults creates a defaults behavior for the comma-separated
// params["actions"].
func NewDefaults(params map[string]string, rb Rebinder) (control.Behavior, error) {
	if rb == nil {
		return nil, errors.New("defaults needs an action manager")
	}
	var actions []string
	for _, a := range strings.Split(params["actions"], ",") {
		if a = strings.TrimSpace(a); a != "" {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return nil, errors.New("defaults needs an actions param")
	}
	return &DefaultsBehavior{rb: rb, actions: actions, onChange: params["onchange"]}, nil
}

// Create implements control.Behavior.
func (d *DefaultsBehavior) Create(*control.Control) error { return nil }

// HandleEvent ignores navigation.
func (d *DefaultsBehavior) HandleEvent(*control.Control, event.Event) bool { return false }

// Execute resets every action and reports how many bindings changed.
func (d *DefaultsBehavior) Execute(c *control.Control) error {
	d.restored = 0
	for _, a := range d.actions {
		d.restored += len(d.rb.ResetToDefault(a))
	}
	notify(c, d.onChange, strconv.Itoa(d.restored))
	return nil
}

// Actions returns the actions this control restores.
func (d *DefaultsBehavior) Actions() []string { return d.actions }

// Restored returns the number of bindings the last Execute changed.
func (d *DefaultsBehavior) Restored() int { return d.restored }
