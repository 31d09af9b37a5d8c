package offer

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerboard/internal/domain"
)

func slugsOf(offers []domain.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Slug)
	}
	return out
}

func TestCreateResolvesReferences(t *testing.T) {
	env := setupTestEnv(t)

	o := env.createOffer(t, CreateOfferInput{Title: "  Senior Gö Developer ", Company: "Acme", CategorySlug: "engineering", Salary: 50000})

	assert.True(t, strings.HasPrefix(o.Slug, "senior-go-developer-"), o.Slug)
	assert.Len(t, o.Slug, len("senior-go-developer-")+6)
	assert.Equal(t, "Senior Gö Developer", o.Title)
	assert.Equal(t, "acme", o.CompanySlug)
	assert.Equal(t, "engineering", o.CategorySlug)
	assert.True(t, o.IsActive)
	assert.Equal(t, int64(0), o.FavoritesCount)
}

func TestCreateFailures(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, CreateOfferInput{Company: "Acme", CategorySlug: "engineering"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["title"])

	_, err = env.svc.Create(ctx, CreateOfferInput{Title: "X", Company: "Acme", CategorySlug: "engineering", Salary: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Create(ctx, CreateOfferInput{Title: "X", Company: "Acme", CategorySlug: "marketing"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.Create(ctx, CreateOfferInput{Title: "X", Company: "Initech", CategorySlug: "engineering"})
	assert.ErrorIs(t, err, ErrEnterpriseNotFound)
}

func TestCreateRetriesSlugCollision(t *testing.T) {
	env := setupTestEnv(t)

	slugs := []string{"taken", "taken", "fresh"}
	env.svc.newSlug = func(string) string {
		s := slugs[0]
		slugs = slugs[1:]
		return s
	}

	first := env.createOffer(t, CreateOfferInput{Title: "One"})
	assert.Equal(t, "taken", first.Slug)

	second := env.createOffer(t, CreateOfferInput{Title: "Two"})
	assert.Equal(t, "fresh", second.Slug)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	env := setupTestEnv(t)
	calls := 0
	env.svc.newSlug = func(string) string {
		calls++
		return "same"
	}

	env.createOffer(t, CreateOfferInput{Title: "One"})
	calls = 0

	_, err := env.svc.Create(context.Background(), CreateOfferInput{Title: "Two", Company: "Acme", CategorySlug: "engineering"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, maxSlugAttempts, calls)
}

func TestSearchSalaryScenario(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	o := env.createOffer(t, CreateOfferInput{Title: "Backend", Company: "Acme", CategorySlug: "engineering", Salary: 50000})

	page, err := env.svc.Search(ctx, OfferFilters{SalaryMin: "40000", SalaryMax: "60000", Category: "engineering"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Contains(t, slugsOf(page.Items), o.Slug)

	page, err = env.svc.Search(ctx, OfferFilters{SalaryMin: "60001"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.NotContains(t, slugsOf(page.Items), o.Slug)
	assert.Equal(t, int64(0), page.TotalCount)

	_, err = env.svc.Search(ctx, OfferFilters{SalaryMin: "abc"}, domain.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListEmptyFiltersAndCountStability(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"Go Dev", "Rust Dev", "Designer"} {
		env.createOffer(t, CreateOfferInput{Title: title, Location: "Berlin"})
	}

	all, err := env.svc.List(ctx, OfferFilters{}, domain.PageRequest{})
	require.NoError(t, err)
	blank, err := env.svc.List(ctx, OfferFilters{Title: "", Location: ""}, domain.PageRequest{})
	require.NoError(t, err)
	assert.ElementsMatch(t, slugsOf(all.Items), slugsOf(blank.Items))
	assert.Equal(t, int64(3), all.TotalCount)

	one, err := env.svc.List(ctx, OfferFilters{Title: "dev"}, domain.PageRequest{Limit: 1})
	require.NoError(t, err)
	twenty, err := env.svc.List(ctx, OfferFilters{Title: "dev"}, domain.PageRequest{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, one.Items, 1)
	assert.Equal(t, twenty.TotalCount, one.TotalCount)
	assert.Equal(t, int64(2), one.TotalCount)
}

func TestListIgnoresSearchOnlyFilters(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.createOffer(t, CreateOfferInput{Title: "Go Dev", Company: "Acme"})
	env.createOffer(t, CreateOfferInput{Title: "Go Dev", Company: "Globex"})

	listed, err := env.svc.List(ctx, OfferFilters{Company: "acme"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), listed.TotalCount)

	searched, err := env.svc.Search(ctx, OfferFilters{Company: "acme"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), searched.TotalCount)
}

func TestInactiveOffersAreHiddenEverywhere(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, 1, "acme")

	hidden := env.createOffer(t, CreateOfferInput{Title: "Go Dev", Location: "Oslo", Salary: 50000})
	_, err := env.svc.Favorite(ctx, hidden.Slug, 1)
	require.NoError(t, err)
	_, err = env.svc.Update(ctx, hidden.Slug, UpdateOfferInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	inactive := env.createOffer(t, CreateOfferInput{Title: "Go Lead", Location: "Rome", IsActive: boolPtr(false)})

	page, err := env.svc.List(ctx, OfferFilters{Title: "go"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = env.svc.Search(ctx, OfferFilters{SearchTerm: "go", Company: "acme", SalaryMin: "1"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = env.svc.Feed(ctx, 1, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	favs, err := env.svc.UserFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favs)

	titles, err := env.svc.Suggestions(ctx, "go")
	require.NoError(t, err)
	assert.Empty(t, titles)

	_, err = env.svc.Locations(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, slug := range []string{hidden.Slug, inactive.Slug} {
		_, err = env.svc.Get(ctx, slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = env.svc.Favorite(ctx, slug, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = env.svc.FavoriteCount(ctx, slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestFavoriteThenUnfavorite(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, 1)

	x := env.createOffer(t, CreateOfferInput{Title: "X"})

	fav, err := env.svc.Favorite(ctx, x.Slug, 1)
	require.NoError(t, err)
	assert.True(t, fav.Favorited)
	assert.Equal(t, int64(1), fav.FavoritesCount)

	again, err := env.svc.Favorite(ctx, x.Slug, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.FavoritesCount)

	list, err := env.svc.UserFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{x.Slug}, slugsOf(list))

	unfav, err := env.svc.Unfavorite(ctx, x.Slug, 1)
	require.NoError(t, err)
	assert.False(t, unfav.Favorited)

	count, err := env.svc.FavoriteCount(ctx, x.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	list, err = env.svc.UserFavorites(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, slugsOf(list), x.Slug)
}

func TestConcurrentFavoriteCountsOnce(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, 1)
	x := env.createOffer(t, CreateOfferInput{Title: "X"})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Favorite(ctx, x.Slug, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := env.svc.FavoriteCount(ctx, x.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteUnknownUserOrOffer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, 1)
	x := env.createOffer(t, CreateOfferInput{Title: "X"})

	_, err := env.svc.Favorite(ctx, x.Slug, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.svc.Unfavorite(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.svc.UserFavorites(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeed(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, 1, "acme")
	env.createUser(t, 2)

	a := env.createOffer(t, CreateOfferInput{Title: "A", Company: "Acme"})
	env.createOffer(t, CreateOfferInput{Title: "B", Company: "Acme"})
	env.createOffer(t, CreateOfferInput{Title: "C", Company: "Globex"})
	_, err := env.svc.Favorite(ctx, a.Slug, 1)
	require.NoError(t, err)

	page, err := env.svc.Feed(ctx, 1, domain.PageRequest{Limit: 1, Sort: domain.SortOldest})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.Slug, page.Items[0].Slug)
	assert.True(t, page.Items[0].Favorited)

	empty, err := env.svc.Feed(ctx, 2, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalCount)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	_, err = env.svc.Feed(ctx, 3, domain.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	o := env.createOffer(t, CreateOfferInput{Title: "Go Dev", Salary: 100})

	updated, err := env.svc.Update(ctx, o.Slug, UpdateOfferInput{Title: strPtr("Go Lead"), Salary: floatPtr(200)})
	require.NoError(t, err)
	assert.Equal(t, o.Slug, updated.Slug)
	assert.Equal(t, "Go Lead", updated.Title)
	assert.Equal(t, 200.0, updated.Salary)

	same, err := env.svc.Update(ctx, o.Slug, UpdateOfferInput{})
	require.NoError(t, err)
	assert.Equal(t, "Go Lead", same.Title)

	_, err = env.svc.Update(ctx, o.Slug, UpdateOfferInput{Title: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Update(ctx, "missing", UpdateOfferInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	o := env.createOffer(t, CreateOfferInput{Title: "Gone", IsActive: boolPtr(false)})

	require.NoError(t, env.svc.Delete(ctx, o.Slug))
	assert.ErrorIs(t, env.svc.Delete(ctx, o.Slug), domain.ErrNotFound)
}

func TestSuggestions(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"Go Dev", "Go Dev", "Golang Lead", "Go SRE", "Go QA", "Go PM", "Go CTO", "Java Dev"} {
		env.createOffer(t, CreateOfferInput{Title: title})
	}

	titles, err := env.svc.Suggestions(ctx, "GO")
	require.NoError(t, err)
	assert.Len(t, titles, suggestionLimit)
	assert.NotContains(t, titles, "Java Dev")

	none, err := env.svc.Suggestions(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	literal, err := env.svc.Suggestions(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, literal)
}

func TestLocations(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Locations(ctx)
	assert.ErrorIs(t, err, ErrNoLocations)

	env.createOffer(t, CreateOfferInput{Title: "A", Location: "Paris"})
	env.createOffer(t, CreateOfferInput{Title: "B", Location: "Berlin"})
	env.createOffer(t, CreateOfferInput{Title: "C", Location: "Paris"})
	env.createOffer(t, CreateOfferInput{Title: "D"})

	locations, err := env.svc.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Berlin", "Paris"}, locations)
}
