// Package menu coordinates menus, menu trees and the groups that load
// them.
//
// A Menu owns an ordered list of controls and handles navigation between
// them. A Tree is one UI flow (pause, settings, HUD) with a history of
// menus; back at its root menu closes it. A Group is the set of menus and
// trees declared by one group file, usually one per game state.
//
// The Manager keeps two activation lists. Modal menu trees take all input,
// update and render time while any is active; interface trees (overlays
// such as a HUD) only run when no menu tree is active. Each call to
// HandleEvent resolves one raw input event through the escape and toggle
// shortcuts, which are always live, and then the ordered cascade select,
// back, up, down, left, right, tab-left, tab-right. Held directions repeat
// through a scheduled task that posts events back to the queue; the queue
// consumer feeds them to HandleMenuEvent on the main thread.
//
// Every lookup of an undeclared group, tree or menu is a critical error.
package menu
