package script

import "errors"

// Errors for engine operations.
var (
	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrFunctionNotFound is returned when a named global is not a function.
	ErrFunctionNotFound = errors.New("script function not found")

	// ErrCallTimeout is returned when a call exceeds the configured timeout.
	ErrCallTimeout = errors.New("script call timeout")
)
