package favorite

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"offerboard/internal/domain"
)

// Store owns the membership rows and the stored counter. AddMember and
// RemoveMember must change the set and recount it in one transaction, and
// both fail with domain.ErrNotFound for a missing or inactive offer.
type Store interface {
	AddMember(ctx context.Context, slug string, userID int64) (*domain.Offer, error)
	RemoveMember(ctx context.Context, slug string, userID int64) (*domain.Offer, error)
	CountBySlug(ctx context.Context, slug string) (int64, error)
	FindFavoritedBy(ctx context.Context, userID int64) ([]domain.Offer, error)
	FavoritedAmong(ctx context.Context, userID int64, offerIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Registry is the only entry point for favorite changes.
type Registry struct {
	store Store
	users UserLookup
	log   *slog.Logger
}

func NewRegistry(store Store, users UserLookup, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{store: store, users: users, log: log.With("component", "favorites")}
}

// Add makes userID a member of the offer's favorites. Repeating it is a no-op.
func (r *Registry) Add(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	if _, err := r.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	offer, err := r.store.AddMember(ctx, slug, userID)
	if err != nil {
		return nil, err
	}
	r.log.DebugContext(ctx, "favorite added", "slug", slug, "user_id", userID, "favorites_count", offer.FavoritesCount)
	return offer, nil
}

// Remove drops userID from the offer's favorites. Removing a non-member is a no-op.
func (r *Registry) Remove(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	if _, err := r.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	offer, err := r.store.RemoveMember(ctx, slug, userID)
	if err != nil {
		return nil, err
	}
	r.log.DebugContext(ctx, "favorite removed", "slug", slug, "user_id", userID, "favorites_count", offer.FavoritesCount)
	return offer, nil
}

func (r *Registry) Count(ctx context.Context, slug string) (int64, error) {
	return r.store.CountBySlug(ctx, slug)
}

// ListOf returns the active offers userID has favorited. The slice is empty,
// never nil, when there are none.
func (r *Registry) ListOf(ctx context.Context, userID int64) ([]domain.Offer, error) {
	if _, err := r.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	offers, err := r.store.FindFavoritedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	return offers, nil
}

// Annotate sets Favorited on each offer according to userID's membership.
func (r *Registry) Annotate(ctx context.Context, userID int64, offers []domain.Offer) error {
	if len(offers) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(offers))
	for i := range offers {
		ids[i] = offers[i].ID
	}
	member, err := r.store.FavoritedAmong(ctx, userID, ids)
	if err != nil {
		return err
	}
	for i := range offers {
		offers[i].Favorited = member[offers[i].ID]
	}
	return nil
}
