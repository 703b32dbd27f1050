package http

import (
	"time"

	"github.com/shareloop/item-loan-backend/internal/booking"
	itemHttp "github.com/shareloop/item-loan-backend/internal/item/http"
	"github.com/shareloop/item-loan-backend/internal/pkg/request"
	userHttp "github.com/shareloop/item-loan-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for the booking list
// endpoints. State is parsed into a bucket by the handler; unknown
// values are rejected there.
type ListBookingsRequest struct {
	request.ListParams
	State string `form:"state"`
}

type CreateBookingBody struct {
	ItemID    string    `json:"item_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
