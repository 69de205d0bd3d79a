package domain

import "errors"

var (
	// ErrInvalidInput is wrapped with a field-level message by the services.
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("access forbidden")
)
