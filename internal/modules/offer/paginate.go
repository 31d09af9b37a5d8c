package offer

import (
	"context"

	"offerboard/internal/domain"
)

const DefaultLimit = 20

// NormalizePage applies the listing defaults. There is no upper bound on
// Limit.
func NormalizePage(page domain.PageRequest) domain.PageRequest {
	if page.Limit <= 0 {
		page.Limit = DefaultLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

// Paginate counts every match of p and fetches one page of it. The count
// ignores limit and offset.
func Paginate(ctx context.Context, store PageStore, p domain.Predicate, page domain.PageRequest) (*domain.OfferPage, error) {
	page = NormalizePage(page)

	total, err := store.Count(ctx, p)
	if err != nil {
		return nil, err
	}
	items, err := store.Find(ctx, p, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Offer{}
	}

	return &domain.OfferPage{
		Items:      items,
		TotalCount: total,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}, nil
}
