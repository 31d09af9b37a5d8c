package repository

import (
	"context"

	"gorm.io/gorm"

	"offerboard/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, wrapErr("get category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return wrapErr("create category", r.db.WithContext(ctx).Create(c).Error)
}

type EnterpriseRepository struct {
	db *gorm.DB
}

func NewEnterpriseRepository(db *gorm.DB) *EnterpriseRepository {
	return &EnterpriseRepository{db: db}
}

// GetByName matches the enterprise name exactly.
func (r *EnterpriseRepository) GetByName(ctx context.Context, name string) (*domain.Enterprise, error) {
	var e domain.Enterprise
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&e).Error; err != nil {
		return nil, wrapErr("get enterprise", err)
	}
	return &e, nil
}

func (r *EnterpriseRepository) Create(ctx context.Context, e *domain.Enterprise) error {
	return wrapErr("create enterprise", r.db.WithContext(ctx).Create(e).Error)
}
