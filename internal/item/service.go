package item

import (
	"context"
	"errors"
	"strings"

	"github.com/shareloop/item-loan-backend/internal/user"
)

type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Available   bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*Item, int, error)
	Search(ctx context.Context, text string, filter Filter) ([]*Item, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Item, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	// Validation: the owner must exist before an item can reference it.
	if _, err := s.userService.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	it := &Item{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     req.OwnerID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*Item, int, error) {
	filter.OwnerID = ownerID
	filter.Search = ""
	return s.repo.List(ctx, filter)
}

func (s *service) Search(ctx context.Context, text string, filter Filter) ([]*Item, int, error) {
	// Blank search returns nothing rather than the whole catalogue.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, 0, nil
	}
	filter.OwnerID = ""
	filter.Search = strings.TrimSpace(text)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != updaterUserID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}
