package repository

import "errors"

// Store-level error contract shared by all UserRepository implementations.
var (
	ErrNotFound   = errors.New("user not found")           // no matching row
	ErrEmailTaken = errors.New("email already registered") // unique constraint on email
)
