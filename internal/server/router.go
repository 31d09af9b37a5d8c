// Package server assembles the HTTP router from its dependencies.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"offerboard/internal/middleware"
	"offerboard/internal/modules/favorite"
	"offerboard/internal/modules/offer"
	"offerboard/internal/pkg/jwt"
	"offerboard/internal/pkg/response"
	"offerboard/internal/repository"
)

type Deps struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Log         *slog.Logger
	CORSOrigins []string
}

// Services exposes the wired services to callers outside the router, such
// as the seed command.
type Services struct {
	Offers    *offer.Service
	Favorites *favorite.Registry
	Users     *repository.UserRepository
}

func NewServices(db *gorm.DB, log *slog.Logger) *Services {
	users := repository.NewUserRepository(db)
	registry := favorite.NewRegistry(repository.NewFavoriteRepository(db), users, log)
	offers := offer.NewService(
		repository.NewOfferRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewEnterpriseRepository(db),
		users,
		registry,
		log,
	)
	return &Services{Offers: offers, Favorites: registry, Users: users}
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/health", health(d.DB))

	svcs := NewServices(d.DB, d.Log)
	v1 := r.Group("/api/v1")
	protected := v1.Group("", middleware.JWTAuth(d.JWT))
	offer.NewHandler(svcs.Offers, d.Log).RegisterRoutes(v1, protected)

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
