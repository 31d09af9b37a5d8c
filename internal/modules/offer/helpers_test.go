package offer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"offerboard/internal/database"
	"offerboard/internal/domain"
	"offerboard/internal/modules/favorite"
	"offerboard/internal/repository"
)

type testEnv struct {
	db    *gorm.DB
	svc   *Service
	users *repository.UserRepository
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:offer_%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	categories := repository.NewCategoryRepository(db)
	enterprises := repository.NewEnterpriseRepository(db)
	require.NoError(t, categories.Create(ctx, &domain.Category{Slug: "engineering", Name: "Engineering"}))
	require.NoError(t, categories.Create(ctx, &domain.Category{Slug: "design", Name: "Design"}))
	require.NoError(t, enterprises.Create(ctx, &domain.Enterprise{Name: "Acme", Slug: "acme"}))
	require.NoError(t, enterprises.Create(ctx, &domain.Enterprise{Name: "Globex", Slug: "globex"}))

	users := repository.NewUserRepository(db)
	registry := favorite.NewRegistry(repository.NewFavoriteRepository(db), users, discardLogger())
	svc := NewService(repository.NewOfferRepository(db), categories, enterprises, users, registry, discardLogger())

	return &testEnv{db: db, svc: svc, users: users}
}

func (e *testEnv) createOffer(t *testing.T, in CreateOfferInput) *domain.Offer {
	t.Helper()
	if in.Company == "" {
		in.Company = "Acme"
	}
	if in.CategorySlug == "" {
		in.CategorySlug = "engineering"
	}
	o, err := e.svc.Create(context.Background(), in)
	require.NoError(t, err)
	return o
}

func (e *testEnv) createUser(t *testing.T, id int64, follows ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.users.Create(ctx, &domain.User{ID: id, Name: fmt.Sprintf("user-%d", id)}))
	for _, slug := range follows {
		require.NoError(t, e.users.Follow(ctx, id, slug))
	}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
