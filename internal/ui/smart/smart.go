// Package smart provides the built-in smart control behaviors.
//
//	toggle   flips between two labelled values (params: on, off, value, onchange)
//	slider   steps a number within a range (params: min, max, step, value, onchange)
//	keybind  rebinds an action to the next released input (params: action)
//	defaults restores the default bindings of actions (params: actions, onchange)
//
// onchange names a script function called with the control name and the
// new value.
package smart

import (
	"fmt"
	"strconv"

	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/control"
)

// Behavior names.
const (
	Toggle   = "toggle"
	Slider   = "slider"
	KeyBind  = "keybind"
	Defaults = "defaults"
)

// Rebinder is the part of the action manager the binding behaviors use.
type Rebinder interface {
	ResetAction(ev input.Event, action string) input.Device
	ResetToDefault(action string) []input.Device
	ComponentIDs(device input.Device, action string) []string
	IsConfigurable(device input.Device, action string) bool
	LastDevice() input.Device
}

// Register adds the built-in behaviors to r.
func Register(r *control.Registry, rb Rebinder) {
	r.Register(Toggle, NewToggle)
	r.Register(Slider, NewSlider)
	r.Register(KeyBind, func(params map[string]string) (control.Behavior, error) {
		return NewKeyBind(params, rb)
	})
	r.Register(Defaults, func(params map[string]string) (control.Behavior, error) {
		return NewDefaults(params, rb)
	})
}

func notify(c *control.Control, fn, value string) {
	if fn == "" {
		return
	}
	s := c.Env().Scripts
	if s == nil || !s.HasFunction(fn) {
		return
	}
	if _, err := s.Call(fn, c.Name(), value); err != nil && c.Env().Log != nil {
		c.Env().Log.WithComponent("smart").Error("onchange %q: %v", fn, err)
	}
}

func floatParam(params map[string]string, key string, def float64) (float64, error) {
	s, ok := params[key]
	if !ok || s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("param %s=%q: %w", key, s, err)
	}
	return v, nil
}
