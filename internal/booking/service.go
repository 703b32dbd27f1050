package booking

import (
	"context"
	"errors"
	"time"

	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/pkg/paging"
	"github.com/shareloop/item-loan-backend/internal/pkg/timewindow"
	"github.com/shareloop/item-loan-backend/internal/user"
)

type CreateRequest struct {
	BookerID  string
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
}

// UserLookup resolves users by id. Satisfied by user.Service.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemLookup resolves items by id. Satisfied by item.Service.
type ItemLookup interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Acknowledge(ctx context.Context, requesterID, bookingID string, approved bool) (*Booking, error)
	Cancel(ctx context.Context, requesterID, bookingID string) (*Booking, error)
	GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error)
	ListForUser(ctx context.Context, requesterID string, role Role, bucket Bucket, page paging.Page) ([]*Booking, int, error)
}

type service struct {
	repo  Repository
	users UserLookup
	items ItemLookup
	now   func() time.Time
}

func NewService(repo Repository, users UserLookup, items ItemLookup) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

// NewServiceWithClock is NewService with an explicit clock, so tests
// can fix time instead of racing the wall clock.
func NewServiceWithClock(repo Repository, users UserLookup, items ItemLookup, now func() time.Time) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	window, err := timewindow.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.users.GetByID(ctx, req.BookerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	b, err := admit(req.BookerID, it, window, s.now())
	if err != nil {
		return nil, err
	}

	// A window colliding with an already approved booking is rejected
	// up front. Overlapping WAITING requests may still stack; the owner
	// arbitrates those when approving.
	hasOverlap, err := s.repo.HasApprovedOverlap(ctx, it.ID, window.Start(), window.End())
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Acknowledge(ctx context.Context, requesterID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if approved {
		err = Approve(b, requesterID)
	} else {
		err = Reject(b, requesterID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, requesterID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := Cancel(b, requesterID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if requesterID != b.BookerID && requesterID != b.OwnerID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) ListForUser(ctx context.Context, requesterID string, role Role, bucket Bucket, page paging.Page) ([]*Booking, int, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	criteria := Criteria{
		Role:      role,
		SubjectID: requesterID,
		Bucket:    bucket,
		Now:       s.now(),
	}

	return s.repo.List(ctx, criteria, page)
}
