package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrEmailRequired    = errors.New("email is required")
	ErrNameRequired     = errors.New("name is required")
)

// User represents a registered member who can own items and book items
// owned by others.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email string
	Name  string

	Page     int
	PageSize int
}
