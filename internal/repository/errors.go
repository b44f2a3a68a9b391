package repository

import "errors"

// Common repository errors
var (
	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = errors.New("card not found")

	// ErrColumnNotFound is returned when a referenced column does not exist
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmailTaken is returned when a user with the same email already exists
	ErrEmailTaken = errors.New("email already registered")
)
