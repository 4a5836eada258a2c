// Package ebitensrc turns ebiten's polled input state into a stream of
// input events.
//
// Call Poll once per ebiten Update. Keyboard, mouse and standard-layout
// gamepad edges come from inpututil; stick and trigger axes are emitted
// whenever their scaled value changes.
package ebitensrc

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/key"
	"github.com/dshills/menustorm/internal/input/mouse"
	"github.com/dshills/menustorm/internal/input/pad"
)

// Source polls ebiten and produces input events.
type Source struct {
	poll Poller

	cursor mouse.Position
	seen   bool

	known map[ebiten.GamepadID]*padState

	keys    []ebiten.Key
	ids     []ebiten.GamepadID
	buttons []ebiten.StandardGamepadButton
}

// padState is what the source remembers about one connected controller.
type padState struct {
	axes [pad.AxisCount]int16
	held map[pad.Button]bool
}

func newPadState() *padState {
	return &padState{held: make(map[pad.Button]bool)}
}

// New creates a source reading live ebiten state.
func New() *Source {
	return NewWithPoller(ebitenPoller{})
}

// NewWithPoller creates a source reading from p.
func NewWithPoller(p Poller) *Source {
	return &Source{
		poll:  p,
		known: make(map[ebiten.GamepadID]*padState),
	}
}

// Cursor returns the last cursor position seen.
func (s *Source) Cursor() mouse.Position {
	return s.cursor
}

// Poll returns the events that happened since the previous call.
func (s *Source) Poll() []input.Event {
	var out []input.Event
	out = s.pollGamepadsConnected(out)
	out = s.pollKeys(out)
	out = s.pollMouse(out)
	out = s.pollGamepads(out)
	return out
}

func (s *Source) pollKeys(out []input.Event) []input.Event {
	s.keys = s.poll.AppendJustReleasedKeys(s.keys[:0])
	for _, ek := range s.keys {
		if k, ok := keyTable[ek]; ok {
			out = append(out, input.KeyUp(int(k)))
		}
	}
	s.keys = s.poll.AppendJustPressedKeys(s.keys[:0])
	for _, ek := range s.keys {
		if k, ok := keyTable[ek]; ok && k != key.KeyNone {
			out = append(out, input.KeyDown(int(k)))
		}
	}
	return out
}

func (s *Source) pollMouse(out []input.Event) []input.Event {
	x, y := s.poll.CursorPosition()
	pos := mouse.Position{X: float64(x), Y: float64(y)}
	if !s.seen || pos != s.cursor {
		out = append(out, input.MouseMove(pos.X, pos.Y))
		s.cursor, s.seen = pos, true
	}

	for _, mb := range mouseButtons {
		if s.poll.IsMouseButtonJustPressed(mb.ebiten) {
			out = append(out, input.MouseDown(int(mb.button), pos.X, pos.Y))
		}
		if s.poll.IsMouseButtonJustReleased(mb.ebiten) {
			out = append(out, input.MouseUp(int(mb.button), pos.X, pos.Y))
		}
	}
	return out
}

func (s *Source) pollGamepadsConnected(out []input.Event) []input.Event {
	s.ids = s.poll.AppendJustConnectedGamepadIDs(s.ids[:0])
	for _, id := range s.ids {
		if _, ok := s.known[id]; !ok {
			s.known[id] = newPadState()
			out = append(out, input.PadAdded(int(id)))
		}
	}

	var gone []ebiten.GamepadID
	for id := range s.known {
		if s.poll.IsGamepadJustDisconnected(id) {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		out = s.releaseHeld(out, int(id), s.known[id])
		delete(s.known, id)
		out = append(out, input.PadRemoved(int(id)))
	}
	return out
}

func (s *Source) pollGamepads(out []input.Event) []input.Event {
	s.ids = s.poll.AppendGamepadIDs(s.ids[:0])
	for _, id := range s.ids {
		st, ok := s.known[id]
		if !ok {
			// Present before the first poll.
			st = newPadState()
			s.known[id] = st
			out = append(out, input.PadAdded(int(id)))
		}
		index := int(id)

		s.buttons = s.poll.AppendJustReleasedStandardGamepadButtons(id, s.buttons[:0])
		for _, b := range s.buttons {
			if pb, ok := padButtons[b]; ok {
				delete(st.held, pb)
				out = append(out, input.PadUp(index, int(pb)))
			}
		}
		s.buttons = s.poll.AppendJustPressedStandardGamepadButtons(id, s.buttons[:0])
		for _, b := range s.buttons {
			if pb, ok := padButtons[b]; ok {
				st.held[pb] = true
				out = append(out, input.PadDown(index, int(pb)))
			}
		}

		for _, a := range padAxes {
			out = s.axis(out, index, &st.axes, a.axis, pad.FromFloat(s.poll.StandardGamepadAxisValue(id, a.ebiten)))
		}
		for _, tr := range padTriggers {
			out = s.axis(out, index, &st.axes, tr.axis, pad.FromFloat(s.poll.StandardGamepadButtonValue(id, tr.ebiten)))
		}
	}
	return out
}

func (s *Source) axis(out []input.Event, index int, axes *[pad.AxisCount]int16, axis pad.Axis, value int16) []input.Event {
	if axes[axis] == value {
		return out
	}
	axes[axis] = value
	return append(out, input.PadAxis(index, int(axis), value))
}

// releaseHeld emits an up event for every button still down on a
// controller that went away, in button order.
func (s *Source) releaseHeld(out []input.Event, index int, st *padState) []input.Event {
	if st == nil || len(st.held) == 0 {
		return out
	}
	held := make([]pad.Button, 0, len(st.held))
	for b := range st.held {
		held = append(held, b)
	}
	sort.Slice(held, func(i, j int) bool { return held[i] < held[j] })
	for _, b := range held {
		out = append(out, input.PadUp(index, int(b)))
	}
	clear(st.held)
	return out
}
