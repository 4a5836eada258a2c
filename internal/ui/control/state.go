package control

import (
	"fmt"
	"strings"
)

// State is a control's position in the state machine. States are ordered;
// comparisons such as state > StateInactive are meaningful.
type State int

const (
	StateNull State = iota
	StateInit
	StateDisabled
	StateInactive
	StateActive
	StateSelected
)

var stateNames = [...]string{
	StateNull:     "null",
	StateInit:     "init",
	StateDisabled: "disabled",
	StateInactive: "inactive",
	StateActive:   "active",
	StateSelected: "selected",
}

// String returns the lower-case state name.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState parses a state name. The empty string yields def.
func ParseState(name string, def State) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return def, nil
	}
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return StateNull, fmt.Errorf("%w: unknown state %q", ErrInvalidConfig, name)
}

// ActionType is what a control does when executed.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionToTree
	ActionToMenu
	ActionBack
	ActionClose
	ActionGameStateChange
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionToTree:          "to_tree",
	ActionToMenu:          "to_menu",
	ActionBack:            "back",
	ActionClose:           "close",
	ActionGameStateChange: "game_state_change",
	ActionQuit:            "quit",
}

// String returns the configuration name of the action type.
func (a ActionType) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// NeedsTarget reports whether the action names a destination.
func (a ActionType) NeedsTarget() bool {
	return a == ActionToTree || a == ActionToMenu || a == ActionGameStateChange
}

// ParseActionType parses an action type name. Hyphens and underscores are
// interchangeable; the empty string is ActionNone.
func ParseActionType(name string) (ActionType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "" {
		return ActionNone, nil
	}
	for i, n := range actionNames {
		if n == name {
			return ActionType(i), nil
		}
	}
	return ActionNone, fmt.Errorf("%w: unknown action type %q", ErrInvalidConfig, name)
}
