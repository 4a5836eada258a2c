// Package event carries the menu events dispatched between the menu
// manager, menus, controls and the game-state layer.
//
// Events flow through a Queue. Producers (controls executing an action,
// the scroll repeat timer) call Post from any goroutine; the frame loop
// calls Drain on the main thread and hands each event to the menu manager
// and then to the registered Observers.
//
// Observers subscribe by topic pattern:
//
//	obs := event.NewObservers()
//	sub := obs.Subscribe("game.**", func(e event.Event) {
//	    log.Printf("game event %s", e.Type)
//	})
//	defer sub.Cancel()
//
// Topics are dotted names; see package topic for wildcard rules.
package event
