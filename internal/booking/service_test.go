package booking

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/pkg/paging"
	"github.com/shareloop/item-loan-backend/internal/user"
)

// Fake collaborators, in-memory. The fake repository mirrors the SQL
// semantics of the pgx implementation: bucket boundaries inclusive,
// ordering by start time descending with id descending as tie-break,
// offset computed from the page index.

type fakeUserLookup struct {
	users map[string]*user.User
}

func (f *fakeUserLookup) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeItemLookup struct {
	items map[string]*item.Item
}

func (f *fakeItemLookup) GetByID(_ context.Context, id string) (*item.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type fakeBookingRepo struct {
	seq      int
	bookings map[string]*Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *Booking) error {
	f.seq++
	b.ID = fmt.Sprintf("b-%03d", f.seq)
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, b *Booking) error {
	stored, ok := f.bookings[b.ID]
	if !ok || stored.Status != StatusWaiting {
		return ErrInvalidStatus
	}
	stored.Status = b.Status
	return nil
}

func (f *fakeBookingRepo) HasApprovedOverlap(_ context.Context, itemID string, start, end time.Time) (bool, error) {
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.Status == StatusApproved &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) List(_ context.Context, criteria Criteria, page paging.Page) ([]*Booking, int, error) {
	if _, err := criteria.conditions(); err != nil {
		return nil, 0, err
	}

	var matched []*Booking
	for _, b := range f.bookings {
		if matchesCriteria(b, criteria) {
			cp := *b
			matched = append(matched, &cp)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].StartTime.After(matched[j].StartTime)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	offset := page.Index() * page.Size()
	if offset >= total {
		return nil, total, nil
	}
	endIdx := offset + page.Size()
	if endIdx > total {
		endIdx = total
	}
	return matched[offset:endIdx], total, nil
}

func matchesCriteria(b *Booking, c Criteria) bool {
	switch c.Role {
	case RoleOwner:
		if b.OwnerID != c.SubjectID {
			return false
		}
	case RoleBooker:
		if b.BookerID != c.SubjectID {
			return false
		}
	}

	switch c.Bucket {
	case BucketAll:
		return true
	case BucketCurrent:
		return !b.StartTime.After(c.Now) && !b.EndTime.Before(c.Now)
	case BucketPast:
		return !b.EndTime.After(c.Now)
	case BucketFuture:
		return !b.StartTime.Before(c.Now)
	case BucketWaiting:
		return b.Status == StatusWaiting
	case BucketRejected:
		return b.Status == StatusRejected
	}
	return false
}

// Fixture: owner u-1 owns available item i-1; u-2 books it.

var svcBase = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type svcFixture struct {
	repo  *fakeBookingRepo
	users *fakeUserLookup
	items *fakeItemLookup
	now   time.Time
	svc   Service
}

func newFixture() *svcFixture {
	f := &svcFixture{
		repo: newFakeBookingRepo(),
		users: &fakeUserLookup{users: map[string]*user.User{
			"u-1": {ID: "u-1", Name: "Ann", Email: "ann@example.com"},
			"u-2": {ID: "u-2", Name: "Bo", Email: "bo@example.com"},
			"u-3": {ID: "u-3", Name: "Cy", Email: "cy@example.com"},
		}},
		items: &fakeItemLookup{items: map[string]*item.Item{
			"i-1": {ID: "i-1", Name: "cordless drill", Available: true, OwnerID: "u-1"},
		}},
		now: svcBase,
	}
	f.svc = NewServiceWithClock(f.repo, f.users, f.items, func() time.Time { return f.now })
	return f
}

func (f *svcFixture) mustPage(t *testing.T, offset, limit int) paging.Page {
	t.Helper()
	p, err := paging.Of(offset, limit)
	require.NoError(t, err)
	return p
}

func (f *svcFixture) createBooking(t *testing.T) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "i-1",
		StartTime: svcBase.Add(24 * time.Hour),
		EndTime:   svcBase.Add(5 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return b
}

func TestCreate(t *testing.T) {
	f := newFixture()

	b := f.createBooking(t)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, "i-1", b.ItemID)
	assert.Equal(t, "u-1", b.OwnerID)
	assert.Equal(t, "u-2", b.BookerID)
	assert.NotEmpty(t, b.ID)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, stored.Status)
}

func TestCreate_InvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "i-1",
		StartTime: svcBase.Add(2 * time.Hour),
		EndTime:   svcBase.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "i-1",
		StartTime: svcBase.Add(time.Hour),
		EndTime:   svcBase.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreate_UnknownUserOrItem(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "ghost",
		ItemID:    "i-1",
		StartTime: svcBase.Add(time.Hour),
		EndTime:   svcBase.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "ghost",
		StartTime: svcBase.Add(time.Hour),
		EndTime:   svcBase.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreate_AdmissionFailures(t *testing.T) {
	f := newFixture()

	f.items.items["i-1"].Available = false
	_, err := f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "i-1",
		StartTime: svcBase.Add(time.Hour),
		EndTime:   svcBase.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
	f.items.items["i-1"].Available = true

	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-1", // the owner
		ItemID:    "i-1",
		StartTime: svcBase.Add(time.Hour),
		EndTime:   svcBase.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSelfBooking)

	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-2",
		ItemID:    "i-1",
		StartTime: svcBase.Add(-time.Hour),
		EndTime:   svcBase.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrStartTimePast)
}

func TestCreate_ConflictWithApprovedBooking(t *testing.T) {
	f := newFixture()

	b := f.createBooking(t)
	_, err := f.svc.Acknowledge(context.Background(), "u-1", b.ID, true)
	require.NoError(t, err)

	// u-3 requests an overlapping window.
	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-3",
		ItemID:    "i-1",
		StartTime: svcBase.Add(2 * 24 * time.Hour),
		EndTime:   svcBase.Add(3 * 24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	// A window after the approved one is fine.
	_, err = f.svc.Create(context.Background(), CreateRequest{
		BookerID:  "u-3",
		ItemID:    "i-1",
		StartTime: svcBase.Add(6 * 24 * time.Hour),
		EndTime:   svcBase.Add(7 * 24 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestAcknowledge(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	approved, err := f.svc.Acknowledge(context.Background(), "u-1", b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	// A second decision fails regardless of direction.
	_, err = f.svc.Acknowledge(context.Background(), "u-1", b.ID, true)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = f.svc.Acknowledge(context.Background(), "u-1", b.ID, false)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAcknowledge_Reject(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	rejected, err := f.svc.Acknowledge(context.Background(), "u-1", b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
}

func TestAcknowledge_NonOwner(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	_, err := f.svc.Acknowledge(context.Background(), "u-2", b.ID, true)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = f.svc.Acknowledge(context.Background(), "u-3", b.ID, false)
	assert.ErrorIs(t, err, ErrNotOwner)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, stored.Status)
}

func TestAcknowledge_UnknownBooking(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Acknowledge(context.Background(), "u-1", "ghost", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_Service(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	_, err := f.svc.Cancel(context.Background(), "u-1", b.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	canceled, err := f.svc.Cancel(context.Background(), "u-2", b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)

	_, err = f.svc.Acknowledge(context.Background(), "u-1", b.ID, true)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	got, err := f.svc.GetByID(context.Background(), "u-2", b.ID) // booker
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.GetByID(context.Background(), "u-1", b.ID) // item owner
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), "u-3", b.ID) // stranger
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListForUser_UnknownUser(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.ListForUser(context.Background(), "ghost", RoleBooker, BucketAll, f.mustPage(t, 0, 10))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListForUser_TemporalBuckets(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t) // window [T+1d, T+5d)

	page := f.mustPage(t, 0, 10)

	// At T+2d the window is current for both roles.
	f.now = svcBase.Add(2 * 24 * time.Hour)
	got, total, err := f.svc.ListForUser(context.Background(), "u-1", RoleOwner, BucketCurrent, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, 1, total)

	got, _, err = f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketCurrent, page)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// At T+10d the same query is empty, while PAST returns it.
	f.now = svcBase.Add(10 * 24 * time.Hour)
	got, _, err = f.svc.ListForUser(context.Background(), "u-1", RoleOwner, BucketCurrent, page)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, _, err = f.svc.ListForUser(context.Background(), "u-1", RoleOwner, BucketPast, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, _, err = f.svc.ListForUser(context.Background(), "u-1", RoleOwner, BucketFuture, page)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListForUser_StatusBuckets(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	page := f.mustPage(t, 0, 10)

	got, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketWaiting, page)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = f.svc.Acknowledge(context.Background(), "u-1", b.ID, false)
	require.NoError(t, err)

	got, _, err = f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketWaiting, page)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, _, err = f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketRejected, page)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListForUser_RoleScoping(t *testing.T) {
	f := newFixture()
	f.createBooking(t)

	page := f.mustPage(t, 0, 10)

	// The booker has nothing as an owner, and vice versa.
	got, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleOwner, BucketAll, page)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, _, err = f.svc.ListForUser(context.Background(), "u-1", RoleBooker, BucketAll, page)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListForUser_OrderingAndPagination(t *testing.T) {
	f := newFixture()

	// Twelve bookings with strictly increasing start times.
	for i := 0; i < 12; i++ {
		_, err := f.svc.Create(context.Background(), CreateRequest{
			BookerID:  "u-2",
			ItemID:    "i-1",
			StartTime: svcBase.Add(time.Duration(i+1) * 24 * time.Hour),
			EndTime:   svcBase.Add(time.Duration(i+1)*24*time.Hour + 12*time.Hour),
		})
		require.NoError(t, err)
	}

	got, total, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketAll, f.mustPage(t, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, got, 5)

	// Most recently starting first.
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].StartTime.Before(got[i-1].StartTime))
	}

	// Offset 7 with limit 5 floors to page 1, i.e. items 5-9.
	pageOne, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketAll, f.mustPage(t, 7, 5))
	require.NoError(t, err)
	require.Len(t, pageOne, 5)
	aligned, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketAll, f.mustPage(t, 5, 5))
	require.NoError(t, err)
	assert.Equal(t, aligned, pageOne)

	// Last page is short.
	tail, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketAll, f.mustPage(t, 10, 5))
	require.NoError(t, err)
	assert.Len(t, tail, 2)
}

func TestListForUser_TieBreakByID(t *testing.T) {
	f := newFixture()

	start := svcBase.Add(24 * time.Hour)
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(context.Background(), CreateRequest{
			BookerID:  "u-2",
			ItemID:    "i-1",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		require.NoError(t, err)
	}

	got, _, err := f.svc.ListForUser(context.Background(), "u-2", RoleBooker, BucketAll, f.mustPage(t, 0, 10))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].ID, got[i].ID)
	}
}
