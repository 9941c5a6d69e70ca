package entity

import (
	"time"
)

// UserStatus is the account lifecycle state.
// PENDING accounts have not proven ownership of their email address and are
// invisible to normal lookups. The only transition is PENDING -> ACTIVE.
type UserStatus string

const (
	StatusPending UserStatus = "PENDING"
	StatusActive  UserStatus = "ACTIVE"
)

// User is the aggregate root for the account domain.
//
// Address is private data: it may only appear in the owner's self view.
// CertificationCode is a secret token and must never leave the backend.
type User struct {
	ID                int64
	Email             string
	Nickname          string
	Address           string
	Status            UserStatus
	CertificationCode string
	LastLoginAt       *int64 // epoch millis, nil until first login
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
