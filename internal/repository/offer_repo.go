package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"offerboard/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create inserts a new offer. A slug collision comes back as domain.ErrConflict.
func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	offer.TitleSearch = strings.ToLower(offer.Title)
	return wrapErr("create offer", r.db.WithContext(ctx).Create(offer).Error)
}

// GetActiveBySlug fetches an active offer with its comments in creation order.
func (r *OfferRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_comments.created_at ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&offer).Error
	if err != nil {
		return nil, wrapErr("get offer", err)
	}
	return &offer, nil
}

// Count returns how many offers match p, ignoring any paging.
func (r *OfferRepository) Count(ctx context.Context, p domain.Predicate) (int64, error) {
	q, err := applyPredicate(r.db.WithContext(ctx).Model(&domain.Offer{}), p)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, wrapErr("count offers", err)
	}
	return total, nil
}

// Find returns one page of offers matching p. Limit and offset are used as
// given; normalising them is the caller's job.
func (r *OfferRepository) Find(ctx context.Context, p domain.Predicate, page domain.PageRequest) ([]domain.Offer, error) {
	q, err := applyPredicate(r.db.WithContext(ctx).Model(&domain.Offer{}), p)
	if err != nil {
		return nil, err
	}

	offers := make([]domain.Offer, 0, page.Limit)
	err = applySort(q, page.Sort).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&offers).Error
	if err != nil {
		return nil, wrapErr("find offers", err)
	}
	return offers, nil
}

// UpdateActive applies changes to the active offer with the given slug in one
// conditional statement and returns the stored result.
func (r *OfferRepository) UpdateActive(ctx context.Context, slug string, changes map[string]any) (*domain.Offer, error) {
	if len(changes) == 0 {
		return r.GetActiveBySlug(ctx, slug)
	}

	if title, ok := changes["title"].(string); ok {
		withSearch := make(map[string]any, len(changes)+1)
		for k, v := range changes {
			withSearch[k] = v
		}
		withSearch["title_search"] = strings.ToLower(title)
		changes = withSearch
	}

	var offer domain.Offer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Offer{}).
			Where("slug = ? AND is_active = ?", slug, true).
			Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// The patch may have switched is_active off, so reload by slug alone.
		return tx.Where("slug = ?", slug).First(&offer).Error
	})
	if err != nil {
		return nil, wrapErr("update offer", err)
	}
	return &offer, nil
}

// DeleteBySlug removes the offer whatever its is_active state, together with
// its favorites set and comments.
func (r *OfferRepository) DeleteBySlug(ctx context.Context, slug string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offer domain.Offer
		if err := tx.Select("id").Where("slug = ?", slug).First(&offer).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&domain.OfferFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&domain.OfferComment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", offer.ID).Delete(&domain.Offer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrapErr("delete offer", err)
}

// DistinctTitles returns up to limit distinct titles of offers matching p.
func (r *OfferRepository) DistinctTitles(ctx context.Context, p domain.Predicate, limit int) ([]string, error) {
	q, err := applyPredicate(r.db.WithContext(ctx).Model(&domain.Offer{}), p)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, limit)
	if err := q.Distinct().Order("title").Limit(limit).Pluck("title", &titles).Error; err != nil {
		return nil, wrapErr("distinct titles", err)
	}
	return titles, nil
}

// DistinctLocations returns the sorted locations of offers matching p. An
// offer without a location contributes "".
func (r *OfferRepository) DistinctLocations(ctx context.Context, p domain.Predicate) ([]string, error) {
	q, err := applyPredicate(r.db.WithContext(ctx).Model(&domain.Offer{}), p)
	if err != nil {
		return nil, err
	}

	var locations []string
	err = q.Distinct().
		Order("location").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, wrapErr("distinct locations", err)
	}
	return locations, nil
}

// AddComment appends a comment to an active offer.
func (r *OfferRepository) AddComment(ctx context.Context, slug string, comment *domain.OfferComment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offer domain.Offer
		if err := tx.Select("id").Where("slug = ? AND is_active = ?", slug, true).First(&offer).Error; err != nil {
			return err
		}
		comment.OfferID = offer.ID
		return tx.Create(comment).Error
	})
	return wrapErr("add comment", err)
}
