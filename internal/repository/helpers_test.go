package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"offerboard/internal/database"
	"offerboard/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedOffer(t *testing.T, db *gorm.DB, o domain.Offer) *domain.Offer {
	t.Helper()
	if o.Slug == "" {
		o.Slug = strings.ToLower(strings.ReplaceAll(o.Title, " ", "-"))
	}
	if o.Company == "" {
		o.Company = "Acme"
		o.CompanySlug = "acme"
	}
	if o.CategorySlug == "" {
		o.CategorySlug = "engineering"
	}
	require.NoError(t, NewOfferRepository(db).Create(context.Background(), &o))
	return &o
}

func seedUser(t *testing.T, db *gorm.DB, id int64, follows ...string) {
	t.Helper()
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.User{ID: id, Name: fmt.Sprintf("user-%d", id)}))
	for _, slug := range follows {
		require.NoError(t, repo.Follow(ctx, id, slug))
	}
}

func countMembers(t *testing.T, db *gorm.DB, offerID any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.OfferFavorite{}).Where("offer_id = ?", offerID).Count(&n).Error)
	return n
}
