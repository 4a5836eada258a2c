// Package app owns the menu services and drives them once per frame.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrClosed indicates the application has been closed.
	ErrClosed = errors.New("application closed")

	// ErrUnknownState indicates a game state with no configuration and no hook.
	ErrUnknownState = errors.New("unknown game state")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "reload", "save", "state")
	Target string // Target of the operation (e.g., file path, state name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError reports which service failed to start.
type InitError struct {
	Component string // Component name (e.g., "config", "bindings", "menus")
	Err       error  // Underlying error
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("init %s: %v", e.Component, e.Err)
	}
	return "init " + e.Component
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func initError(component string, err error) error {
	return &InitError{Component: component, Err: err}
}
