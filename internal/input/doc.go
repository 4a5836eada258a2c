// Package input defines the raw device events fed into the action and menu
// layers.
//
// Host adapters (see the source subpackages) translate platform events into
// Event values. Every constructor stamps the event with a process-wide
// sequence number so that consumers may cache per-event results:
//
//	ev := input.KeyDown(key.KeyA)
//	if actions.WasAction(ev, "Left") == input.PressDown {
//		// ...
//	}
//
// Device-native codes live in the key, mouse and pad subpackages; the keycode
// package maps them to the component-id strings used in configuration.
package input
