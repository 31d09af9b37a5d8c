package offer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"offerboard/internal/domain"
	"offerboard/internal/pkg/slugify"
	"offerboard/internal/pkg/validator"
)

const (
	maxSlugAttempts = 3
	suggestionLimit = 5
)

type Service struct {
	offers      OfferStore
	categories  CategoryLookup
	enterprises EnterpriseLookup
	users       UserLookup
	favorites   FavoriteRegistry
	log         *slog.Logger

	newSlug func(title string) string
}

func NewService(offers OfferStore, categories CategoryLookup, enterprises EnterpriseLookup, users UserLookup, favorites FavoriteRegistry, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		offers:      offers,
		categories:  categories,
		enterprises: enterprises,
		users:       users,
		favorites:   favorites,
		log:         log.With("component", "offers"),
		newSlug:     slugify.WithToken,
	}
}

// Create validates the input, resolves its category and enterprise, and stores
// a new offer with an empty favorites set. A slug collision is retried with a
// fresh token a bounded number of times.
func (s *Service) Create(ctx context.Context, in CreateOfferInput) (*domain.Offer, error) {
	in.normalize()
	if fields := validator.Validate(in); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}

	category, err := s.categories.GetBySlug(ctx, in.CategorySlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	enterprise, err := s.enterprises.GetByName(ctx, in.Company)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	for attempt := 1; ; attempt++ {
		offer := &domain.Offer{
			Slug:         s.newSlug(in.Title),
			Title:        in.Title,
			Company:      enterprise.Name,
			CompanySlug:  enterprise.Slug,
			Location:     in.Location,
			Description:  in.Description,
			Requirements: in.Requirements,
			Salary:       in.Salary,
			CategoryID:   category.ID,
			CategorySlug: category.Slug,
			Image:        in.Image,
			IsActive:     active,
		}

		err := s.offers.Create(ctx, offer)
		if err == nil {
			s.log.InfoContext(ctx, "offer created", "slug", offer.Slug, "company", offer.CompanySlug)
			return offer, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt == maxSlugAttempts {
			return nil, err
		}
		s.log.WarnContext(ctx, "slug collision, regenerating", "slug", offer.Slug, "attempt", attempt)
	}
}

func (s *Service) Get(ctx context.Context, slug string) (*domain.Offer, error) {
	return s.offers.GetActiveBySlug(ctx, slug)
}

// List filters by title and location only; other parameters are ignored.
func (s *Service) List(ctx context.Context, f OfferFilters, page domain.PageRequest) (*domain.OfferPage, error) {
	pred, err := BuildPredicate(OfferFilters{Title: f.Title, Location: f.Location})
	if err != nil {
		return nil, err
	}
	return Paginate(ctx, s.offers, pred, page)
}

func (s *Service) Search(ctx context.Context, f OfferFilters, page domain.PageRequest) (*domain.OfferPage, error) {
	pred, err := BuildPredicate(f)
	if err != nil {
		return nil, err
	}
	return Paginate(ctx, s.offers, pred, page)
}

// Update applies the non-nil fields of in to an active offer. Slug and
// favorites are never touched.
func (s *Service) Update(ctx context.Context, slug string, in UpdateOfferInput) (*domain.Offer, error) {
	in.normalize()
	if fields := validator.Validate(in); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}

	offer, err := s.offers.UpdateActive(ctx, slug, in.changes())
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "offer updated", "slug", slug)
	return offer, nil
}

// Delete removes the offer whether or not it is active.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.offers.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "offer deleted", "slug", slug)
	return nil
}

func (s *Service) Favorite(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	return s.favorites.Add(ctx, slug, userID)
}

func (s *Service) Unfavorite(ctx context.Context, slug string, userID int64) (*domain.Offer, error) {
	return s.favorites.Remove(ctx, slug, userID)
}

func (s *Service) FavoriteCount(ctx context.Context, slug string) (int64, error) {
	return s.favorites.Count(ctx, slug)
}

func (s *Service) UserFavorites(ctx context.Context, userID int64) ([]domain.Offer, error) {
	return s.favorites.ListOf(ctx, userID)
}

// Suggestions returns up to five distinct titles of active offers containing
// term. A blank term yields no suggestions.
func (s *Service) Suggestions(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}, nil
	}

	pred := domain.ActiveOnly().And(domain.Constraint{Field: domain.FieldTitle, Op: domain.OpContains, Value: term})
	titles, err := s.offers.DistinctTitles(ctx, pred, suggestionLimit)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Locations returns the sorted distinct locations of active offers, or
// ErrNoLocations when there are none.
func (s *Service) Locations(ctx context.Context) ([]string, error) {
	locations, err := s.offers.DistinctLocations(ctx, domain.ActiveOnly())
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	return locations, nil
}

