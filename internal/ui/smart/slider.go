package smart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/control"
)

// SliderBehavior steps a value between min and max with left and right.
type SliderBehavior struct {
	min, max, step float64
	value          float64
	onChange       string
}

// NewSlider creates a slider. Defaults are 0..10 in steps of 1.
func NewSlider(params map[string]string) (control.Behavior, error) {
	s := &SliderBehavior{onChange: params["onchange"]}
	var err error
	if s.min, err = floatParam(params, "min", 0); err != nil {
		return nil, err
	}
	if s.max, err = floatParam(params, "max", 10); err != nil {
		return nil, err
	}
	if s.step, err = floatParam(params, "step", 1); err != nil {
		return nil, err
	}
	if s.value, err = floatParam(params, "value", s.min); err != nil {
		return nil, err
	}
	if s.max <= s.min || s.step <= 0 {
		return nil, fmt.Errorf("slider range %v..%v step %v is empty", s.min, s.max, s.step)
	}
	s.value = s.clamp(s.value)
	return s, nil
}

// Create implements control.Behavior.
func (s *SliderBehavior) Create(*control.Control) error { return nil }

// HandleEvent steps on left and right presses, including scroll repeats.
func (s *SliderBehavior) HandleEvent(c *control.Control, e event.Event) bool {
	var dir float64
	switch e.Type {
	case event.TypeLeft:
		dir = -1
	case event.TypeRight:
		dir = 1
	default:
		return false
	}
	if e.Press == input.PressDown {
		s.Set(c, s.value+dir*s.step)
	}
	return true
}

// Execute does nothing; the slider changes only by stepping.
func (s *SliderBehavior) Execute(*control.Control) error { return nil }

// Set clamps v into range and notifies when it changed.
func (s *SliderBehavior) Set(c *control.Control, v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	notify(c, s.onChange, s.Value())
}

// Number returns the current value.
func (s *SliderBehavior) Number() float64 { return s.value }

// Value returns the value formatted without trailing zeros.
func (s *SliderBehavior) Value() string {
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

func (s *SliderBehavior) clamp(v float64) float64 {
	return math.Max(s.min, math.Min(s.max, v))
}
