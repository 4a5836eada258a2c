package menu

import "errors"

// Errors wrapped by critical errors from this package.
var (
	ErrGroupNotFound     = errors.New("menu group not found")
	ErrTreeNotFound      = errors.New("menu tree not found")
	ErrMenuNotFound      = errors.New("menu not found")
	ErrTreeAlreadyActive = errors.New("menu tree already active")
	ErrTreeNotActive     = errors.New("menu tree not active")
	ErrMalformedConfig   = errors.New("malformed menu configuration")
)
