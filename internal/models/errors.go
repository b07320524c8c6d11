package models

import "errors"

// Domain-specific errors shared across stores
var (
	// ErrNotFound indicates that a row with the requested id or natural key
	// does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername indicates an attempt to create a user with a
	// username that is already taken
	ErrDuplicateUsername = errors.New("username already exists")
)
