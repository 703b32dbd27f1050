package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/item-loan-backend/internal/booking"
	"github.com/shareloop/item-loan-backend/internal/identity"
	"github.com/shareloop/item-loan-backend/internal/pkg/paging"
	"github.com/shareloop/item-loan-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	bookerID := identity.GetUserID(c)
	if bookerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID:  bookerID,
		ItemID:    body.ItemID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Acknowledge lets the item owner approve or reject a waiting booking
// via PATCH /bookings/:id?approved=true|false.
func (h *Handler) Acknowledge(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	requesterID := identity.GetUserID(c)

	b, err := h.service.Acknowledge(c.Request.Context(), requesterID, id, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	requesterID := identity.GetUserID(c)

	b, err := h.service.GetByID(c.Request.Context(), requesterID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListForBooker returns the caller's own booking requests.
func (h *Handler) ListForBooker(c *gin.Context) {
	h.list(c, booking.RoleBooker)
}

// ListForOwner returns bookings on items the caller owns.
func (h *Handler) ListForOwner(c *gin.Context) {
	h.list(c, booking.RoleOwner)
}

func (h *Handler) list(c *gin.Context, role booking.Role) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	bucket, err := booking.ParseBucket(req.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := paging.Of(req.From, req.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requesterID := identity.GetUserID(c)

	bookings, total, err := h.service.ListForUser(c.Request.Context(), requesterID, role, bucket, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.From, req.Size, total))
}

// Cancel lets the booker withdraw their own waiting request.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	requesterID := identity.GetUserID(c)

	b, err := h.service.Cancel(c.Request.Context(), requesterID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
