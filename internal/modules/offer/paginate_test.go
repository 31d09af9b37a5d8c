package offer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerboard/internal/domain"
)

type stubPageStore struct {
	total    int64
	items    []domain.Offer
	err      error
	lastPage domain.PageRequest
}

func (s *stubPageStore) Count(context.Context, domain.Predicate) (int64, error) {
	return s.total, s.err
}

func (s *stubPageStore) Find(_ context.Context, _ domain.Predicate, page domain.PageRequest) ([]domain.Offer, error) {
	s.lastPage = page
	return s.items, s.err
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, domain.PageRequest{Limit: 20}, NormalizePage(domain.PageRequest{Limit: 0, Offset: -3}))
	assert.Equal(t, domain.PageRequest{Limit: 500, Offset: 7}, NormalizePage(domain.PageRequest{Limit: 500, Offset: 7}))
	assert.Equal(t, 20, NormalizePage(domain.PageRequest{Limit: -1}).Limit)
}

func TestPaginateCountIgnoresPaging(t *testing.T) {
	store := &stubPageStore{total: 42, items: []domain.Offer{{Title: "a"}}}

	page, err := Paginate(context.Background(), store, domain.ActiveOnly(), domain.PageRequest{Limit: 1, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(42), page.TotalCount)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Limit)
	assert.Equal(t, 10, page.Offset)
	assert.Equal(t, domain.PageRequest{Limit: 1, Offset: 10}, store.lastPage)
}

func TestPaginateNeverReturnsNilItems(t *testing.T) {
	store := &stubPageStore{}

	page, err := Paginate(context.Background(), store, domain.ActiveOnly(), domain.PageRequest{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, DefaultLimit, store.lastPage.Limit)
}

func TestPaginatePropagatesStoreError(t *testing.T) {
	boom := &domain.StoreError{Op: "count offers", Err: errors.New("down")}
	_, err := Paginate(context.Background(), &stubPageStore{err: boom}, domain.ActiveOnly(), domain.PageRequest{})
	assert.ErrorIs(t, err, boom)
}
