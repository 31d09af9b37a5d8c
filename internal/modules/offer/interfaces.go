package offer

import (
	"context"

	"offerboard/internal/domain"
)

// PageStore is what Paginate needs: a total for the predicate and one bounded
// slice of it.
type PageStore interface {
	Count(ctx context.Context, p domain.Predicate) (int64, error)
	Find(ctx context.Context, p domain.Predicate, page domain.PageRequest) ([]domain.Offer, error)
}

type OfferStore interface {
	PageStore
	Create(ctx context.Context, offer *domain.Offer) error
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Offer, error)
	UpdateActive(ctx context.Context, slug string, changes map[string]any) (*domain.Offer, error)
	DeleteBySlug(ctx context.Context, slug string) error
	DistinctTitles(ctx context.Context, p domain.Predicate, limit int) ([]string, error)
	DistinctLocations(ctx context.Context, p domain.Predicate) ([]string, error)
}

type CategoryLookup interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type EnterpriseLookup interface {
	GetByName(ctx context.Context, name string) (*domain.Enterprise, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// FavoriteRegistry is satisfied by *favorite.Registry.
type FavoriteRegistry interface {
	Add(ctx context.Context, slug string, userID int64) (*domain.Offer, error)
	Remove(ctx context.Context, slug string, userID int64) (*domain.Offer, error)
	Count(ctx context.Context, slug string) (int64, error)
	ListOf(ctx context.Context, userID int64) ([]domain.Offer, error)
	Annotate(ctx context.Context, userID int64, offers []domain.Offer) error
}
