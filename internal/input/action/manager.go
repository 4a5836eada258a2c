package action

import (
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/input/keycode"
	"github.com/dshills/menustorm/internal/input/pad"
	"github.com/dshills/menustorm/internal/logging"
)

// Manager resolves raw events to logical actions.
type Manager struct {
	log   *logging.Logger
	codes map[input.Device]*keycode.Map
	maps  map[input.Device]*Map

	enabled bool
	last    input.Device
	sticks  *stickTracker

	// Resolution of the most recent sequenced event.
	cachedSeq  uint64
	cachedHits []hit

	doc     []byte
	entries []*entry
	dirty   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithKeyCodes replaces the built-in id table for device.
func WithKeyCodes(device input.Device, codes *keycode.Map) Option {
	return func(m *Manager) {
		if codes != nil {
			m.codes[device] = codes
		}
	}
}

// NewManager creates a manager with empty bindings and action handling enabled.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		log:     logging.Nop(),
		codes:   make(map[input.Device]*keycode.Map),
		enabled: true,
		sticks:  newStickTracker(),
	}
	for _, d := range input.Devices {
		m.codes[d] = keycode.ForDevice(d)
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithComponent("action")
	m.maps = newDeviceMaps()
	return m
}

func newDeviceMaps() map[input.Device]*Map {
	maps := make(map[input.Device]*Map, len(input.Devices))
	for _, d := range input.Devices {
		maps[d] = NewMap()
	}
	return maps
}

// KeyCodes returns the id table for device.
func (m *Manager) KeyCodes(device input.Device) *keycode.Map {
	return m.codes[device]
}

// Map returns the bindings for device.
func (m *Manager) Map(device input.Device) *Map {
	return m.maps[device]
}

// EnableAction turns action reporting on or off. While off, WasAction
// reports PressIdle for everything; device and stick tracking continue so
// no edge is lost or duplicated when reporting resumes.
func (m *Manager) EnableAction(enabled bool) {
	if m.enabled != enabled {
		m.log.Debug("action handling enabled=%v", enabled)
	}
	m.enabled = enabled
}

// ActionEnabled reports whether action reporting is on.
func (m *Manager) ActionEnabled() bool {
	return m.enabled
}

// WasAction reports the edge ev produces for the named action.
// Unbound or unknown action names yield PressIdle.
func (m *Manager) WasAction(ev input.Event, action string) input.PressState {
	hits := m.resolve(ev)
	if !m.enabled {
		return input.PressIdle
	}
	for _, h := range hits {
		b, ok := m.maps[h.device].Binding(action)
		if ok && b.Has(h.code) {
			return h.press
		}
	}
	return input.PressIdle
}

// Actions returns every action ev triggers with its edge.
func (m *Manager) Actions(ev input.Event) map[string]input.PressState {
	hits := m.resolve(ev)
	result := make(map[string]input.PressState)
	if !m.enabled {
		return result
	}
	for _, h := range hits {
		for _, name := range m.maps[h.device].Lookup(h.code) {
			if _, seen := result[name]; !seen {
				result[name] = h.press
			}
		}
	}
	return result
}

// Track records the device of an event that carries no action, such as
// mouse motion.
func (m *Manager) Track(ev input.Event) {
	m.resolve(ev)
}

// resolve classifies ev, updates device and stick state, and returns the
// codes it pressed or released. Sequenced events are resolved only once.
func (m *Manager) resolve(ev input.Event) []hit {
	if ev.Seq != 0 && ev.Seq == m.cachedSeq {
		return m.cachedHits
	}

	var hits []hit
	switch ev.Kind {
	case input.KindKeyDown, input.KindKeyUp:
		m.last = input.DeviceKeyboard
		if !ev.Repeat {
			hits = []hit{{device: input.DeviceKeyboard, code: ev.Code, press: ev.Kind.Press()}}
		}
	case input.KindMouseDown, input.KindMouseUp:
		m.last = input.DeviceMouse
		hits = []hit{{device: input.DeviceMouse, code: ev.Code, press: ev.Kind.Press()}}
	case input.KindMouseMove:
		m.last = input.DeviceMouse
	case input.KindPadDown, input.KindPadUp:
		m.last = input.DeviceGamepad
		hits = []hit{{device: input.DeviceGamepad, code: ev.Code, press: ev.Kind.Press()}}
	case input.KindPadAxis:
		hits = m.sticks.step(ev.Pad, pad.Axis(ev.Axis), ev.Value)
		if len(hits) > 0 {
			m.last = input.DeviceGamepad
		}
	case input.KindPadRemoved:
		hits = m.sticks.reset(ev.Pad)
		if len(hits) > 0 {
			m.last = input.DeviceGamepad
		}
	}

	if ev.Seq != 0 {
		m.cachedSeq = ev.Seq
		m.cachedHits = hits
	}
	return hits
}

// ResetPad forgets the stick state of a disconnected controller without
// reporting releases. A PadRemoved event passed to WasAction reports them.
func (m *Manager) ResetPad(index int) {
	m.sticks.reset(index)
}

// LastDevice returns the device of the most recent qualifying event.
func (m *Manager) LastDevice() input.Device {
	return m.last
}

// WasLastDeviceMouse reports whether the mouse was used last.
func (m *Manager) WasLastDeviceMouse() bool {
	return m.last == input.DeviceMouse
}

// WasLastDeviceKeyboard reports whether the keyboard was used last.
func (m *Manager) WasLastDeviceKeyboard() bool {
	return m.last == input.DeviceKeyboard
}

// WasLastDeviceGamepad reports whether a gamepad was used last.
func (m *Manager) WasLastDeviceGamepad() bool {
	return m.last == input.DeviceGamepad
}

// Unbound returns the names in actions that have no binding on any device.
func (m *Manager) Unbound(actions []string) []string {
	var missing []string
	for _, name := range actions {
		bound := false
		for _, d := range input.Devices {
			if _, ok := m.maps[d].Binding(name); ok {
				bound = true
				break
			}
		}
		if !bound {
			missing = append(missing, name)
		}
	}
	return missing
}
