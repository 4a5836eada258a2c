// Package critical defines the error type used for configuration and
// integrity failures that must abort the current operation.
//
// A critical error carries a short title and a human-readable message meant
// for display in an error dialog. Hosts print both and exit non-zero.
package critical

import (
	"errors"
	"fmt"
)

// Error is a fatal configuration or integrity error.
type Error struct {
	Title   string // Short heading (e.g. "Menu Tree Error")
	Message string // Human-readable detail
	Err     error  // Underlying sentinel or cause
}

// New creates a critical error. The message is formatted with args.
func New(title string, err error, format string, args ...any) *Error {
	return &Error{
		Title:   title,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Title + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// As returns the first critical error in err's chain.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Is reports whether err's chain contains a critical error.
func Is(err error) bool {
	_, ok := As(err)
	return ok
}
