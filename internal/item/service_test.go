package item

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/item-loan-backend/internal/user"
)

type fakeItemRepo struct {
	seq   int
	items map[string]*Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*Item)}
}

func (f *fakeItemRepo) Create(_ context.Context, it *Item) error {
	f.seq++
	it.ID = fmt.Sprintf("i-%03d", f.seq)
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) List(_ context.Context, filter Filter) ([]*Item, int, error) {
	var out []*Item
	for _, it := range f.items {
		if filter.OwnerID != "" && it.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !it.Available {
				continue
			}
			if !strings.Contains(strings.ToLower(it.Name), needle) &&
				!strings.Contains(strings.ToLower(it.Description), needle) {
				continue
			}
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *Item) error {
	if _, ok := f.items[it.ID]; !ok {
		return ErrNotFound
	}
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

// fakeUserService only resolves users by id; the item service never
// touches the rest of the interface.
type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) Create(context.Context, user.CreateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) List(context.Context, user.Filter) ([]*user.User, int, error) {
	panic("not used")
}

func (f *fakeUserService) Update(context.Context, string, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Delete(context.Context, string) error {
	panic("not used")
}

func newItemFixture() (Service, *fakeItemRepo) {
	repo := newFakeItemRepo()
	users := &fakeUserService{users: map[string]*user.User{
		"u-1": {ID: "u-1", Name: "Ann", Email: "ann@example.com"},
	}}
	return NewService(repo, users), repo
}

func TestCreateItem(t *testing.T) {
	svc, _ := newItemFixture()

	it, err := svc.Create(context.Background(), CreateRequest{
		OwnerID:     "u-1",
		Name:        "  Cordless Drill ",
		Description: "18V, two batteries",
		Available:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "Cordless Drill", it.Name)
	assert.Equal(t, "u-1", it.OwnerID)
	assert.True(t, it.Available)
}

func TestCreateItem_Validation(t *testing.T) {
	svc, _ := newItemFixture()

	_, err := svc.Create(context.Background(), CreateRequest{OwnerID: "u-1", Name: "  "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(context.Background(), CreateRequest{OwnerID: "ghost", Name: "Drill"})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestUpdateItem_OwnerOnly(t *testing.T) {
	svc, _ := newItemFixture()

	it, err := svc.Create(context.Background(), CreateRequest{OwnerID: "u-1", Name: "Drill", Available: true})
	require.NoError(t, err)

	available := false
	_, err = svc.Update(context.Background(), it.ID, UpdateRequest{Available: &available}, "u-2")
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.Update(context.Background(), it.ID, UpdateRequest{Available: &available}, "u-1")
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "Drill", got.Name)
}

func TestUpdateItem_Partial(t *testing.T) {
	svc, repo := newItemFixture()

	it, err := svc.Create(context.Background(), CreateRequest{
		OwnerID:     "u-1",
		Name:        "Drill",
		Description: "old",
		Available:   true,
	})
	require.NoError(t, err)

	desc := "new description"
	got, err := svc.Update(context.Background(), it.ID, UpdateRequest{Description: &desc}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, "new description", got.Description)
	assert.True(t, got.Available)

	blank := " "
	_, err = svc.Update(context.Background(), it.ID, UpdateRequest{Name: &blank}, "u-1")
	assert.ErrorIs(t, err, ErrEmptyName)

	stored, err := repo.GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, "new description", stored.Description)
}

func TestSearch(t *testing.T) {
	svc, _ := newItemFixture()

	_, err := svc.Create(context.Background(), CreateRequest{
		OwnerID: "u-1", Name: "Cordless Drill", Description: "18V", Available: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateRequest{
		OwnerID: "u-1", Name: "Hammer Drill", Description: "corded", Available: false,
	})
	require.NoError(t, err)

	// Only the available item matches, case-insensitively.
	got, total, err := svc.Search(context.Background(), "dRiLl", Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Cordless Drill", got[0].Name)
}

func TestSearch_BlankText(t *testing.T) {
	svc, _ := newItemFixture()

	_, err := svc.Create(context.Background(), CreateRequest{OwnerID: "u-1", Name: "Drill", Available: true})
	require.NoError(t, err)

	got, total, err := svc.Search(context.Background(), "   ", Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestListByOwner(t *testing.T) {
	svc, _ := newItemFixture()

	_, err := svc.Create(context.Background(), CreateRequest{OwnerID: "u-1", Name: "Drill", Available: true})
	require.NoError(t, err)

	got, total, err := svc.ListByOwner(context.Background(), "u-1", Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, got, 1)

	got, total, err = svc.ListByOwner(context.Background(), "u-2", Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
