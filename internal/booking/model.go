package booking

import (
	"net/http"
	"time"

	"github.com/shareloop/item-loan-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrItemNotFound      = apperror.New(http.StatusNotFound, "item not found")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast     = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrItemUnavailable   = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrSelfBooking       = apperror.New(http.StatusNotFound, "cannot book your own item")
	ErrNotOwner          = apperror.New(http.StatusForbidden, "only the item owner can decide on a booking")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "booking is no longer waiting for a decision")
	ErrAccessDenied      = apperror.New(http.StatusForbidden, "viewer is neither booker nor item owner")
	ErrUnsupportedBucket = apperror.New(http.StatusBadRequest, "unknown booking state filter")
	ErrUnsupportedRole   = apperror.New(http.StatusBadRequest, "unknown listing role")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time window conflicts with an approved booking")
)

type Status string

const (
	// StatusWaiting is the initial status of every booking; the item
	// owner decides from here.
	StatusWaiting Status = "WAITING"
	// StatusApproved is the accepted state. It is absorbing: no
	// transition leads back to WAITING.
	StatusApproved Status = "APPROVED"
	// StatusRejected and StatusCanceled are terminal.
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Booking is a request by a booker to use another user's item for a
// fixed [start, end) time window. Item and booker references never
// change after creation; only the status does, exactly once.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
