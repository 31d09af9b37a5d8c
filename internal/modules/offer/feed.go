package offer

import (
	"context"

	"offerboard/internal/domain"
)

// Feed lists active offers from the companies userID follows, each marked
// with that user's favorite state.
func (s *Service) Feed(ctx context.Context, userID int64, page domain.PageRequest) (*domain.OfferPage, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	following := user.FollowingCompanies()
	if len(following) == 0 {
		page = NormalizePage(page)
		return &domain.OfferPage{Items: []domain.Offer{}, Limit: page.Limit, Offset: page.Offset}, nil
	}

	pred := domain.ActiveOnly().And(domain.Constraint{
		Field: domain.FieldCompanySlug,
		Op:    domain.OpIn,
		Value: following,
	})
	result, err := Paginate(ctx, s.offers, pred, page)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Annotate(ctx, userID, result.Items); err != nil {
		return nil, err
	}
	return result, nil
}
