package control

import "errors"

// Errors wrapped by critical errors from this package.
var (
	// ErrNullState is returned when a script is resolved for StateNull.
	ErrNullState = errors.New("control state is null")

	// ErrControlNotFound is returned by lookups of an unknown control.
	ErrControlNotFound = errors.New("control not found")

	// ErrUnknownBehavior is returned when a smart behavior name has no factory.
	ErrUnknownBehavior = errors.New("unknown smart behavior")

	// ErrInvalidConfig is returned for unparseable control configuration.
	ErrInvalidConfig = errors.New("invalid control configuration")
)
