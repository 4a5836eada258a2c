package smart

import (
	"errors"
	"strings"

	"github.com/dshills/menustorm/internal/event"
	"github.com/dshills/menustorm/internal/input"
	"github.com/dshills/menustorm/internal/ui/control"
)

// KeyBindBehavior captures the next released input and rebinds its action
// to it. The menu manager forwards raw input to the control while it is
// capturing.
type KeyBindBehavior struct {
	rb        Rebinder
	action    string
	capturing bool
	changed   input.Device
}

// NewKeyBind creates a key-bind behavior for params["action"].
func NewKeyBind(params map[string]string, rb Rebinder) (control.Behavior, error) {
	if rb == nil {
		return nil, errors.New("keybind needs an action manager")
	}
	action := params["action"]
	if action == "" {
		return nil, errors.New("keybind needs an action param")
	}
	return &KeyBindBehavior{rb: rb, action: action}, nil
}

// Create implements control.Behavior.
func (k *KeyBindBehavior) Create(*control.Control) error { return nil }

// HandleEvent ignores navigation.
func (k *KeyBindBehavior) HandleEvent(*control.Control, event.Event) bool { return false }

// Execute starts capturing.
func (k *KeyBindBehavior) Execute(*control.Control) error {
	k.capturing = true
	return nil
}

// Capturing implements control.Capturer.
func (k *KeyBindBehavior) Capturing() bool { return k.capturing }

// Capture rebinds on the first release of a configurable input. Presses,
// motion and releases of non-configurable devices keep the capture open.
func (k *KeyBindBehavior) Capture(ev input.Event) bool {
	if !k.capturing {
		return false
	}
	d := k.rb.ResetAction(ev, k.action)
	if d == input.DeviceNull {
		return false
	}
	k.changed = d
	k.capturing = false
	return true
}

// CancelCapture stops capturing without rebinding.
func (k *KeyBindBehavior) CancelCapture() { k.capturing = false }

// Action returns the action being rebound.
func (k *KeyBindBehavior) Action() string { return k.action }

// Changed returns the device class of the last successful rebind.
func (k *KeyBindBehavior) Changed() input.Device { return k.changed }

// Value shows the current binding for the last used device, or a prompt
// while capturing.
func (k *KeyBindBehavior) Value() string {
	if k.capturing {
		return "..."
	}
	d := k.rb.LastDevice()
	if d == input.DeviceNull || !k.rb.IsConfigurable(d, k.action) {
		d = input.DeviceKeyboard
	}
	return strings.Join(k.rb.ComponentIDs(d, k.action), ", ")
}
