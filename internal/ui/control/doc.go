// Package control implements a single interactive menu widget and its
// state machine.
//
// A Control moves between DISABLED, INACTIVE, ACTIVE and SELECTED. Every
// real change of the displayed state (state != lastState) runs the state's
// script hook, recycles the animation coroutines of the previous state,
// re-derives the sprite animations, and spawns the new state's animation
// script. Asking for the same state twice fires nothing the second time.
//
// Selecting an ACTIVE control moves it to SELECTED on the press; the
// release executes its configured action (to-tree, to-menu, back, close,
// game-state change or quit), runs the optional smart behavior, posts
// ControlExecuted, and returns it to ACTIVE.
//
// Controls never own their collaborators. The Env passed to New carries the
// event poster, script engine, last-device tracker, behavior registry and
// logger, all of which outlive the control.
package control
