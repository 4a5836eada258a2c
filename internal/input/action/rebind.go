package action

import (
	"fmt"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/input"
	"github.com/tidwall/sjson"
)

// ResetAction rebinds action to the code released by ev. It returns the
// device class that changed, or DeviceNull when nothing was rebound: ev is
// not a release, the action is not configurable on that device, or the code
// has no component id.
func (m *Manager) ResetAction(ev input.Event, action string) input.Device {
	var released *hit
	for _, h := range m.resolve(ev) {
		if h.press == input.PressUp {
			h := h
			released = &h
			break
		}
	}
	if released == nil {
		return input.DeviceNull
	}

	e := m.configurableEntry(released.device, action)
	if e == nil {
		return input.DeviceNull
	}
	id, ok := m.codes[released.device].Name(released.code)
	if !ok {
		return input.DeviceNull
	}
	if err := m.rebind(e, id, released.code); err != nil {
		m.log.Error("rebinding %q: %v", action, err)
		return input.DeviceNull
	}
	m.log.Info("rebound %s action %q to %s", released.device, action, id)
	return released.device
}

// ResetToDefault restores the default ids of every configurable entry for
// action. It returns the devices that changed.
func (m *Manager) ResetToDefault(action string) []input.Device {
	var changed []input.Device
	for _, e := range m.entries {
		if e.action != action || !e.configurable || e.def == "" || e.def == e.id {
			continue
		}
		code, ok := m.codes[e.device].Code(e.def)
		if !ok {
			m.log.Warn("default id %q for action %q is unknown", e.def, action)
			continue
		}
		if err := m.rebind(e, e.def, code); err != nil {
			m.log.Error("restoring %q: %v", action, err)
			continue
		}
		changed = append(changed, e.device)
	}
	return changed
}

func (m *Manager) rebind(e *entry, id string, code int) error {
	doc, err := sjson.SetBytes(m.doc, e.path(), id)
	if err != nil {
		return fmt.Errorf("updating %s: %w", e.path(), err)
	}

	bindings := m.maps[e.device]
	if b, ok := bindings.Binding(e.action); ok && e.known && !m.codeStillUsed(e, e.code) {
		b.Remove(e.code)
	}
	bindings.Register(e.action, code)

	e.id, e.code, e.known = id, code, true
	m.doc = doc
	m.dirty = true
	return nil
}

// codeStillUsed reports whether another entry binds the same action to code.
func (m *Manager) codeStillUsed(skip *entry, code int) bool {
	for _, e := range m.entries {
		if e != skip && e.known && e.device == skip.device && e.action == skip.action && e.code == code {
			return true
		}
	}
	return false
}

// Dirty reports whether rebinding edits are unsaved.
func (m *Manager) Dirty() bool {
	return m.dirty
}

// Document returns a copy of the current binding document.
func (m *Manager) Document() []byte {
	return append([]byte(nil), m.doc...)
}

// Save writes the binding document to path.
func (m *Manager) Save(fsys loader.FileSystem, path string) error {
	if m.doc == nil {
		return fmt.Errorf("no binding document loaded")
	}
	if err := fsys.WriteFile(path, m.doc); err != nil {
		return fmt.Errorf("saving bindings to %s: %w", path, err)
	}
	m.dirty = false
	m.log.Info("saved bindings to %s", path)
	return nil
}
