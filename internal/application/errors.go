package application

import "errors"

// Service-level errors returned to the HTTP layer, which maps each kind to a
// status code. Store conflicts keep the repository.ErrEmailTaken sentinel.
var (
	// ErrInvalidInput covers malformed or missing request fields. 400.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound covers both missing rows and rows hidden by the
	// ACTIVE-only visibility rule, so callers cannot probe for PENDING
	// accounts. 404.
	ErrUserNotFound = errors.New("user not found")
	// ErrCertificationMismatch never carries the expected code. 403.
	ErrCertificationMismatch = errors.New("certification code mismatch")
	// ErrNotification surfaces a transport failure during issuance. 502.
	ErrNotification = errors.New("notification dispatch failed")
)
