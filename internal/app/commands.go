package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"menu_agent/internal/domain"
	"menu_agent/internal/query"
)

// CatalogService owns every write path. Each successful write evicts the
// cached snapshot so the next read goes to the store.
type CatalogService struct {
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache) *CatalogService {
	if c == nil {
		c = NopCache{}
	}
	return &CatalogService{repo: r, cache: c}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, in RestaurantInput) (domain.Restaurant, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return domain.Restaurant{}, err
	}
	r, err := s.repo.CreateRestaurant(ctx, domain.Restaurant{
		Name:        in.Name,
		City:        in.City,
		CuisineHint: in.CuisineHint,
	})
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	s.invalidate(ctx)
	return r, nil
}

// CreateItem fails with domain.ErrNotFound when the restaurant is unknown.
func (s *CatalogService) CreateItem(ctx context.Context, restaurantID int64, in ItemInput) (domain.MenuItem, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	price, err := domain.PriceFromFloat(*in.Price)
	if err != nil {
		ve := &domain.ValidationError{}
		ve.Add("price", err.Error())
		return domain.MenuItem{}, ve
	}
	currency := in.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	it, err := s.repo.CreateItem(ctx, domain.MenuItem{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        price,
		Currency:     currency,
		IsSignature:  in.IsSignature,
		RegionTags:   cleanTags(in.RegionTags),
		FlavorTags:   cleanTags(in.FlavorTags),
	})
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("create item for restaurant %d: %w", restaurantID, err)
	}
	s.invalidate(ctx)
	return it, nil
}

// Reset wipes the catalog. Without confirm it refuses and changes nothing.
func (s *CatalogService) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		ve := &domain.ValidationError{}
		ve.Add("confirm", "must be true to reset the catalog")
		return ve
	}
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.invalidate(ctx)
	log.Warn().Msg("catalog reset")
	return nil
}

// Seed loads the sample catalog into an empty store. It reports false and
// writes nothing when any restaurant already exists.
func (s *CatalogService) Seed(ctx context.Context) (bool, error) {
	existing, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	items := 0
	for _, sr := range sampleCatalog {
		r, err := s.CreateRestaurant(ctx, sr.Restaurant)
		if err != nil {
			return false, fmt.Errorf("seed %q: %w", sr.Restaurant.Name, err)
		}
		for _, in := range sr.Items {
			if _, err := s.CreateItem(ctx, r.ID, in); err != nil {
				return false, fmt.Errorf("seed %q: %w", in.Name, err)
			}
			items++
		}
	}
	log.Info().Int("restaurants", len(sampleCatalog)).Int("items", items).Msg("catalog seeded")
	return true, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	for _, k := range []string{itemsKey, restaurantsKey} {
		if err := s.cache.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache invalidate failed")
		}
	}
}

// cleanTags trims, drops empties and keeps the first spelling of each
// normalized tag, sorted by normalized form.
func cleanTags(tags []string) []string {
	seen := make(map[string]string, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := query.NormalizeTag(t)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = t
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}
