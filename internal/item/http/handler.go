package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/item-loan-backend/internal/identity"
	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/pkg/paging"
	"github.com/shareloop/item-loan-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := identity.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	it, err := h.service.Create(c.Request.Context(), item.CreateRequest{
		OwnerID:     ownerID,
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, item.ErrOwnerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, item.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get item"})
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

// List returns the caller's own items.
func (h *Handler) List(c *gin.Context) {
	var req ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ownerID := identity.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := paging.Of(req.From, req.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, total, err := h.service.ListByOwner(c.Request.Context(), ownerID, item.Filter{
		Page:     p.Index() + 1,
		PageSize: p.Size(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, req.From, req.Size, total))
}

// Search returns available items matching the given text.
func (h *Handler) Search(c *gin.Context) {
	var req SearchItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	p, err := paging.Of(req.From, req.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, total, err := h.service.Search(c.Request.Context(), req.Text, item.Filter{
		Page:     p.Index() + 1,
		PageSize: p.Size(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search items"})
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = NewItemResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, req.From, req.Size, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := identity.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), id, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, item.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, item.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}
