package booking

import (
	"time"

	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/pkg/timewindow"
)

// admit evaluates the admission policy for a new booking request. It
// reads only the item snapshot and the given clock instant; it performs
// no I/O. On success it returns a WAITING booking bound to the item,
// booker and window.
//
// Start times in the past are rejected on every creation path; there is
// no retroactive booking.
func admit(requesterID string, it *item.Item, w timewindow.Window, now time.Time) (*Booking, error) {
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	if it.OwnerID == requesterID {
		return nil, ErrSelfBooking
	}
	if w.Start().Before(now) {
		return nil, ErrStartTimePast
	}

	return &Booking{
		ItemID:    it.ID,
		ItemName:  it.Name,
		OwnerID:   it.OwnerID,
		BookerID:  requesterID,
		StartTime: w.Start(),
		EndTime:   w.End(),
		Status:    StatusWaiting,
	}, nil
}
