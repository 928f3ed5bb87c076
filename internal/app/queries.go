package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"menu_agent/internal/adapters/observability"
	"menu_agent/internal/domain"
	"menu_agent/internal/query"
)

const (
	itemsKey       = "catalog:items"
	restaurantsKey = "catalog:restaurants"

	// EmptyRecommendationNote is returned alongside an empty recommendation.
	EmptyRecommendationNote = "No matching items. Try removing filters (region/flavor/max_price)."
)

// NopCache never hits; used when caching is disabled.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, int) error    { return nil }
func (NopCache) Del(context.Context, string) error              { return nil }

// Recommendation is the result of a recommendation query.
type Recommendation struct {
	Items []domain.MenuItem `json:"items"`
	Note  string            `json:"note"`
}

// QueryService serves read paths: snapshot from cache or store, then the
// query core.
type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	if c == nil {
		c = NopCache{}
	}
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var cached []domain.Restaurant
	if ok, err := s.cache.Get(ctx, restaurantsKey, &cached); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", restaurantsKey).Msg("cache get failed")
	}

	rs, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if rs == nil {
		rs = []domain.Restaurant{}
	}
	if err := s.cache.Set(ctx, restaurantsKey, rs, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", restaurantsKey).Msg("cache set failed")
	}
	return rs, nil
}

// ListItems returns the items matching c in snapshot order.
func (s *QueryService) ListItems(ctx context.Context, c query.Criteria) ([]domain.MenuItem, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := query.ListItems(items, c)
	observability.ObserveQuery("list_items", len(out))
	return out, nil
}

// Recommend ranks the matching items and adds a hint when nothing matched.
func (s *QueryService) Recommend(ctx context.Context, p RecommendParams) (Recommendation, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return Recommendation{}, err
	}
	out := query.GetRecommendations(items, p.Criteria, p.Limit, p.PreferSignature)
	observability.ObserveQuery("recommend", len(out))
	rec := Recommendation{Items: out}
	if len(out) == 0 {
		rec.Note = EmptyRecommendationNote
	}
	return rec, nil
}

// snapshot is cache-aside over the full item list. Cache failures degrade to
// the store.
func (s *QueryService) snapshot(ctx context.Context) ([]domain.MenuItem, error) {
	var cached []domain.MenuItem
	if ok, err := s.cache.Get(ctx, itemsKey, &cached); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", itemsKey).Msg("cache get failed")
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if err := s.cache.Set(ctx, itemsKey, items, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", itemsKey).Msg("cache set failed")
	}
	return items, nil
}
