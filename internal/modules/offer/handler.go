package offer

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"offerboard/internal/domain"
	"offerboard/internal/middleware"
	"offerboard/internal/pkg/response"
)

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/offers", h.List)
		public.GET("/offers/search", h.Search)
		public.GET("/offers/suggestions", h.Suggestions)
		public.GET("/offers/locations", h.Locations)
		public.GET("/offers/:slug", h.Get)
		public.GET("/offers/:slug/favorites/count", h.FavoriteCount)
	}

	if protected != nil {
		protected.POST("/offers", h.Create)
		protected.PUT("/offers/:slug", h.Update)
		protected.DELETE("/offers/:slug", h.Delete)
		protected.POST("/offers/:slug/favorite", h.Favorite)
		protected.DELETE("/offers/:slug/favorite", h.Unfavorite)
		protected.GET("/offers/feed", h.Feed)
		protected.GET("/me/favorites", h.UserFavorites)
	}
}

func (h *Handler) List(c *gin.Context) {
	var f OfferFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters")
		return
	}
	page, err := pageFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), f, page)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Page(c, http.StatusOK, result)
}

func (h *Handler) Search(c *gin.Context) {
	var f OfferFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters")
		return
	}
	page, err := pageFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.svc.Search(c.Request.Context(), f, page)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Page(c, http.StatusOK, result)
}

func (h *Handler) Suggestions(c *gin.Context) {
	titles, err := h.svc.Suggestions(c.Request.Context(), c.Query("term"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"suggestions": titles})
}

func (h *Handler) Locations(c *gin.Context) {
	locations, err := h.svc.Locations(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locations})
}

func (h *Handler) Get(c *gin.Context) {
	offer, err := h.svc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": offer})
}

func (h *Handler) FavoriteCount(c *gin.Context) {
	slug := c.Param("slug")
	n, err := h.svc.FavoriteCount(c.Request.Context(), slug)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, FavoriteCountResponse{Slug: slug, FavoritesCount: n})
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateOfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	offer, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"offer": offer})
}

func (h *Handler) Update(c *gin.Context) {
	var in UpdateOfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	offer, err := h.svc.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": offer})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Favorite(c *gin.Context) {
	offer, err := h.svc.Favorite(c.Request.Context(), c.Param("slug"), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": offer})
}

func (h *Handler) Unfavorite(c *gin.Context) {
	offer, err := h.svc.Unfavorite(c.Request.Context(), c.Param("slug"), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": offer})
}

func (h *Handler) Feed(c *gin.Context) {
	page, err := pageFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.svc.Feed(c.Request.Context(), c.GetInt64(middleware.UserIDKey), page)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Page(c, http.StatusOK, result)
}

func (h *Handler) UserFavorites(c *gin.Context) {
	offers, err := h.svc.UserFavorites(c.Request.Context(), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

// pageFromQuery reads limit, offset and sort. Missing values fall through to
// NormalizePage defaults; malformed ones are rejected.
func pageFromQuery(c *gin.Context) (domain.PageRequest, error) {
	var page domain.PageRequest
	verr := &domain.ValidationError{Fields: map[string]string{}}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields["limit"] = "must be an integer"
		}
		page.Limit = n
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields["offset"] = "must be an integer"
		}
		page.Offset = n
	}
	sort, err := domain.ParseSortOrder(strings.TrimSpace(c.Query("sort")))
	if err != nil {
		verr.Fields["sort"] = "unknown sort order"
	}
	page.Sort = sort

	if len(verr.Fields) > 0 {
		return domain.PageRequest{}, verr
	}
	return page, nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", verr.Fields)
	case errors.Is(err, domain.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrEnterpriseNotFound):
		response.Error(c, http.StatusBadRequest, "REFERENCE_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domain.ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Resource already exists")
	default:
		_ = c.Error(err)
		h.log.ErrorContext(c.Request.Context(), "offer request failed", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
