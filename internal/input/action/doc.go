// Package action translates raw input events into logical actions.
//
// A Manager holds one Map per device class (keyboard, mouse, gamepad), each
// mapping an action name such as "Select" or "Left" to the set of native
// codes that trigger it. WasAction is the single query point:
//
//	switch actions.WasAction(ev, "Select") {
//	case input.PressDown:
//		// pressed
//	case input.PressUp:
//		// released
//	}
//
// Analog sticks and triggers behave as buttons. Each stick direction on each
// controller reports PressDown once when the axis leaves the deadzone and
// PressUp once when it returns.
//
// Bindings are loaded from a JSON document with "hidden" and "visible"
// sections per device. Visible entries marked configurable can be rebound at
// runtime with ResetAction and written back with Save; only the edited "id"
// values change in the saved document.
//
// The Manager is not safe for concurrent use. It is driven from the frame
// loop together with the menu manager.
package action
