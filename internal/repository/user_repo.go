package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"offerboard/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID loads the user together with the companies they follow.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("FollowedCompanies", func(db *gorm.DB) *gorm.DB {
			return db.Order("company_slug ASC")
		}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Name = strings.TrimSpace(u.Name)
	return wrapErr("create user", r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

// Follow records that userID follows companySlug. Following twice is a no-op.
func (r *UserRepository) Follow(ctx context.Context, userID int64, companySlug string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.FollowedCompany{UserID: userID, CompanySlug: companySlug}).Error
	return wrapErr("follow company", err)
}

func (r *UserRepository) Unfollow(ctx context.Context, userID int64, companySlug string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_slug = ?", userID, companySlug).
		Delete(&domain.FollowedCompany{}).Error
	return wrapErr("unfollow company", err)
}
