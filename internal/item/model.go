package item

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNotOwner      = errors.New("only the item owner can edit it")
)

// Item represents a unit that its owner offers for loan (e.g., a drill,
// a board game). The availability flag controls whether new bookings
// are admitted for it.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	OwnerName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing items.
type Filter struct {
	OwnerID string
	// Search matches name or description, case-insensitively. Only
	// available items are returned for text searches.
	Search string

	Page     int
	PageSize int
}
