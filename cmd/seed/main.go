package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"gorm.io/gorm"

	"offerboard/internal/config"
	"offerboard/internal/database"
	"offerboard/internal/domain"
	"offerboard/internal/modules/offer"
	"offerboard/internal/pkg/logger"
	"offerboard/internal/repository"
	"offerboard/internal/server"
)

var categories = []domain.Category{
	{Slug: "engineering", Name: "Engineering"},
	{Slug: "design", Name: "Design"},
	{Slug: "marketing", Name: "Marketing"},
	{Slug: "operations", Name: "Operations"},
}

var enterprises = []domain.Enterprise{
	{Name: "Acme", Slug: "acme"},
	{Name: "Globex", Slug: "globex"},
	{Name: "Initech", Slug: "initech"},
	{Name: "Umbrella", Slug: "umbrella"},
}

var titles = map[string][]string{
	"engineering": {"Backend Engineer", "Go Developer", "Site Reliability Engineer", "Data Engineer"},
	"design":      {"Product Designer", "UX Researcher"},
	"marketing":   {"Growth Marketer", "Content Strategist"},
	"operations":  {"Operations Manager", "Support Lead"},
}

var locations = []string{"Almaty", "Astana", "Berlin", "Remote", "Warsaw"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Connect(cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: cfg.MaxOpenConns})
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), db, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed completed")
}

func seed(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	log.Info("cleaning old data")
	for _, table := range []string{"offer_comments", "offer_favorites", "offers", "user_followed_companies", "users", "enterprises", "categories"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	categoryRepo := repository.NewCategoryRepository(db)
	for i := range categories {
		if err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}
	enterpriseRepo := repository.NewEnterpriseRepository(db)
	for i := range enterprises {
		if err := enterpriseRepo.Create(ctx, &enterprises[i]); err != nil {
			return err
		}
	}

	svcs := server.NewServices(db, log)

	log.Info("creating users")
	const userCount = 10
	for id := int64(1); id <= userCount; id++ {
		if err := svcs.Users.Create(ctx, &domain.User{ID: id, Name: fmt.Sprintf("User %d", id)}); err != nil {
			return err
		}
		for _, e := range enterprises {
			if rand.IntN(2) == 0 {
				if err := svcs.Users.Follow(ctx, id, e.Slug); err != nil {
					return err
				}
			}
		}
	}

	log.Info("creating offers")
	offerRepo := repository.NewOfferRepository(db)
	var created []*domain.Offer
	for _, c := range categories {
		for _, title := range titles[c.Slug] {
			for _, e := range enterprises {
				active := rand.IntN(10) != 0
				o, err := svcs.Offers.Create(ctx, offer.CreateOfferInput{
					Title:        title,
					Company:      e.Name,
					CategorySlug: c.Slug,
					Location:     locations[rand.IntN(len(locations))],
					Description:  fmt.Sprintf("%s at %s.", title, e.Name),
					Requirements: "3+ years of relevant experience.",
					Salary:       float64(300000 + rand.IntN(20)*50000),
					IsActive:     &active,
				})
				if err != nil {
					return err
				}
				created = append(created, o)
			}
		}
	}

	log.Info("adding favorites and comments")
	var favorites int
	for _, o := range created {
		if !o.IsActive {
			continue
		}
		for id := int64(1); id <= userCount; id++ {
			if rand.IntN(4) != 0 {
				continue
			}
			if _, err := svcs.Favorites.Add(ctx, o.Slug, id); err != nil {
				return err
			}
			favorites++
		}
		if rand.IntN(3) == 0 {
			comment := &domain.OfferComment{UserID: int64(1 + rand.IntN(userCount)), Body: "Is this role open to relocation?"}
			if err := offerRepo.AddComment(ctx, o.Slug, comment); err != nil {
				return err
			}
		}
	}

	log.Info("seeded", "categories", len(categories), "enterprises", len(enterprises), "users", userCount, "offers", len(created), "favorites", favorites)
	return nil
}
