package http

import (
	"time"

	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/pkg/request"
	userHttp "github.com/shareloop/item-loan-backend/internal/user/http"
)

// ListItemsRequest defines query parameters for listing the caller's items.
type ListItemsRequest struct {
	request.ListParams
}

// SearchItemsRequest defines query parameters for the item search endpoint.
type SearchItemsRequest struct {
	request.ListParams
	Text string `form:"text"`
}

type CreateItemBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Available   *bool  `json:"available" binding:"required"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type ItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	Owner       userHttp.UserTag `json:"owner"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Owner:       userHttp.UserTag{ID: it.OwnerID, Name: it.OwnerName},
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
