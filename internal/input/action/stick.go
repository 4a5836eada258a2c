package action

import (
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/pad"
)

// hit is one (code, edge) pair produced by resolving an event.
type hit struct {
	device input.Device
	code   int
	press  input.PressState
}

// stickTracker keeps the deadzone zone of every axis of every controller.
type stickTracker struct {
	zones map[int]*[pad.AxisCount]int
}

func newStickTracker() *stickTracker {
	return &stickTracker{zones: make(map[int]*[pad.AxisCount]int)}
}

// step records a new axis value and returns the edges it produced.
// Moving straight from one side to the other releases the old direction
// before pressing the new one.
func (s *stickTracker) step(padIndex int, axis pad.Axis, value int16) []hit {
	if axis >= pad.AxisCount {
		return nil
	}
	zones, ok := s.zones[padIndex]
	if !ok {
		zones = new([pad.AxisCount]int)
		s.zones[padIndex] = zones
	}

	old := zones[axis]
	now := pad.Zone(value)
	if old == now {
		return nil
	}
	zones[axis] = now

	neg, pos := pad.Directions(axis)
	button := func(zone int) pad.Button {
		if zone < 0 {
			return neg
		}
		return pos
	}

	var hits []hit
	if old != 0 {
		if b := button(old); b != pad.ButtonNone {
			hits = append(hits, hit{device: input.DeviceGamepad, code: int(b), press: input.PressUp})
		}
	}
	if now != 0 {
		if b := button(now); b != pad.ButtonNone {
			hits = append(hits, hit{device: input.DeviceGamepad, code: int(b), press: input.PressDown})
		}
	}
	return hits
}

// reset forgets the state of one controller and returns a release for
// every direction it was still holding.
func (s *stickTracker) reset(padIndex int) []hit {
	zones, ok := s.zones[padIndex]
	if !ok {
		return nil
	}
	delete(s.zones, padIndex)

	var hits []hit
	for axis, zone := range zones {
		if zone == 0 {
			continue
		}
		neg, pos := pad.Directions(pad.Axis(axis))
		b := pos
		if zone < 0 {
			b = neg
		}
		if b != pad.ButtonNone {
			hits = append(hits, hit{device: input.DeviceGamepad, code: int(b), press: input.PressUp})
		}
	}
	return hits
}
