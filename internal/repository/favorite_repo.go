package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"offerboard/internal/domain"
)

// recountSQL derives favorites_count from the membership rows. It runs in the
// same transaction as every membership change, so the counter never drifts
// from the set it mirrors.
const recountSQL = `UPDATE offers SET favorites_count = (SELECT COUNT(*) FROM offer_favorites WHERE offer_favorites.offer_id = offers.id) WHERE offers.id = ?`

// FavoriteRepository is the only writer of offer_favorites and
// offers.favorites_count.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// AddMember puts userID into the favorites set of the active offer. Adding an
// existing member changes nothing.
func (r *FavoriteRepository) AddMember(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	offer, err := r.mutate(ctx, slug, func(tx *gorm.DB, offerID uuid.UUID) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.OfferFavorite{OfferID: offerID, UserID: userID}).Error
	})
	if err != nil {
		return nil, wrapErr("add favorite", err)
	}
	offer.Favorited = true
	return offer, nil
}

// RemoveMember takes userID out of the favorites set of the active offer.
// Removing a non-member changes nothing.
func (r *FavoriteRepository) RemoveMember(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	offer, err := r.mutate(ctx, slug, func(tx *gorm.DB, offerID uuid.UUID) error {
		return tx.Where("offer_id = ? AND user_id = ?", offerID, userID).
			Delete(&domain.OfferFavorite{}).Error
	})
	if err != nil {
		return nil, wrapErr("remove favorite", err)
	}
	offer.Favorited = false
	return offer, nil
}

// mutate locks the active offer row, applies change to its membership rows,
// recounts, and returns the offer as committed.
func (r *FavoriteRepository) mutate(ctx context.Context, slug string, change func(tx *gorm.DB, offerID uuid.UUID) error) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ? AND is_active = ?", slug, true).
			First(&offer).Error; err != nil {
			return err
		}
		if err := change(tx, offer.ID); err != nil {
			return err
		}
		if err := tx.Exec(recountSQL, offer.ID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", offer.ID).First(&offer).Error
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// CountBySlug reads the stored counter of an active offer.
func (r *FavoriteRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var offer domain.Offer
	err := r.db.WithContext(ctx).
		Select("favorites_count").
		Where("slug = ? AND is_active = ?", slug, true).
		Take(&offer).Error
	if err != nil {
		return 0, wrapErr("count favorites", err)
	}
	return offer.FavoritesCount, nil
}

// FindFavoritedBy lists the active offers in userID's favorites, most recently
// favorited first.
func (r *FavoriteRepository) FindFavoritedBy(ctx context.Context, userID int64) ([]domain.Offer, error) {
	offers := make([]domain.Offer, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Joins("JOIN offer_favorites ON offer_favorites.offer_id = offers.id").
		Where("offer_favorites.user_id = ? AND offers.is_active = ?", userID, true).
		Order("offer_favorites.created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, wrapErr("find favorites", err)
	}
	for i := range offers {
		offers[i].Favorited = true
	}
	return offers, nil
}

// FavoritedAmong reports which of offerIDs are in userID's favorites.
func (r *FavoriteRepository) FavoritedAmong(ctx context.Context, userID int64, offerIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(offerIDs))
	if len(offerIDs) == 0 {
		return out, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.OfferFavorite{}).
		Where("user_id = ? AND offer_id IN ?", userID, offerIDs).
		Pluck("offer_id", &ids).Error
	if err != nil {
		return nil, wrapErr("favorited among", err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// Reconcile recomputes every offer's counter from its membership rows and
// returns how many rows had drifted.
func (r *FavoriteRepository) Reconcile(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`UPDATE offers SET favorites_count = (SELECT COUNT(*) FROM offer_favorites WHERE offer_favorites.offer_id = offers.id) WHERE favorites_count <> (SELECT COUNT(*) FROM offer_favorites WHERE offer_favorites.offer_id = offers.id)`)
	if res.Error != nil {
		return 0, wrapErr("reconcile favorites", res.Error)
	}
	return res.RowsAffected, nil
}
