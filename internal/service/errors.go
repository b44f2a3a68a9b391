package service

import "errors"

// Error kinds returned by the services. Handlers map them to HTTP status codes;
// any other error is treated as internal.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
