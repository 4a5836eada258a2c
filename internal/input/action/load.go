package action

import (
	"errors"
	"fmt"

	"github.com/dshills/menustorm/internal/config/loader"
	"github.com/dshills/menustorm/internal/critical"
	"github.com/dshills/menustorm/internal/input"
	"github.com/tidwall/gjson"
)

// ErrMalformedBindings indicates a binding document that cannot be used.
var ErrMalformedBindings = errors.New("malformed binding configuration")

const errTitle = "Action Binding Error"

// Section keys of the binding document, per device.
var sectionKeys = map[input.Device]string{
	input.DeviceKeyboard: "keyboardMapping",
	input.DeviceMouse:    "mouseMapping",
	input.DeviceGamepad:  "gamepadMapping",
}

const (
	sectionHidden  = "hidden"
	sectionVisible = "visible"
)

// entry is one binding entry of the loaded document.
type entry struct {
	device       input.Device
	section      string
	index        int
	id           string
	action       string
	def          string
	configurable bool

	code  int
	known bool
}

// path is the sjson/gjson path of the entry's id attribute.
func (e *entry) path() string {
	return fmt.Sprintf("%s.%s.%d.id", sectionKeys[e.device], e.section, e.index)
}

// LoadBindingsFile reads and loads a binding document.
func (m *Manager) LoadBindingsFile(fsys loader.FileSystem, path string) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return critical.New(errTitle, err, "cannot read binding file %s", path)
	}
	if err := m.LoadBindings(data); err != nil {
		return err
	}
	m.log.Info("loaded %d bindings from %s", len(m.entries), path)
	return nil
}

// LoadBindings replaces all bindings with those in doc.
// On error the previous bindings stay in place.
func (m *Manager) LoadBindings(doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return critical.New(errTitle, ErrMalformedBindings, "binding document is not valid JSON")
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return critical.New(errTitle, ErrMalformedBindings, "binding document must be an object")
	}

	var entries []*entry
	for _, device := range input.Devices {
		key := sectionKeys[device]
		mapping := root.Get(key)
		if !mapping.Exists() {
			continue
		}
		if !mapping.IsObject() {
			return critical.New(errTitle, ErrMalformedBindings, "%q must be an object", key)
		}
		for _, section := range []string{sectionHidden, sectionVisible} {
			parsed, err := parseSection(device, key, section, mapping.Get(section))
			if err != nil {
				return err
			}
			entries = append(entries, parsed...)
		}
	}

	maps := newDeviceMaps()
	for _, e := range entries {
		code, ok := m.codes[e.device].Code(e.id)
		if !ok {
			m.log.Debug("skipping unknown %s id %q for action %q", e.device, e.id, e.action)
			continue
		}
		e.code, e.known = code, true
		maps[e.device].Register(e.action, code)
	}

	m.maps = maps
	m.entries = entries
	m.doc = append([]byte(nil), doc...)
	m.dirty = false
	return nil
}

func parseSection(device input.Device, key, section string, list gjson.Result) ([]*entry, error) {
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, critical.New(errTitle, ErrMalformedBindings, "%s.%s must be an array", key, section)
	}

	var entries []*entry
	for i, item := range list.Array() {
		if !item.IsObject() {
			return nil, critical.New(errTitle, ErrMalformedBindings, "%s.%s[%d] must be an object", key, section, i)
		}
		id, action := item.Get("id"), item.Get("action")
		if id.Type != gjson.String || action.Type != gjson.String || action.String() == "" {
			return nil, critical.New(errTitle, ErrMalformedBindings, "%s.%s[%d] needs string \"id\" and \"action\"", key, section, i)
		}
		e := &entry{
			device:  device,
			section: section,
			index:   i,
			id:      id.String(),
			action:  action.String(),
		}
		if section == sectionVisible {
			e.def = item.Get("default").String()
			e.configurable = item.Get("configurable").Bool()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ComponentIDs returns the configured ids bound to action on device.
func (m *Manager) ComponentIDs(device input.Device, action string) []string {
	var ids []string
	for _, e := range m.entries {
		if e.device == device && e.action == action {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// IsConfigurable reports whether action has a user-configurable entry on device.
func (m *Manager) IsConfigurable(device input.Device, action string) bool {
	return m.configurableEntry(device, action) != nil
}

func (m *Manager) configurableEntry(device input.Device, action string) *entry {
	for _, e := range m.entries {
		if e.device == device && e.action == action && e.configurable {
			return e
		}
	}
	return nil
}
