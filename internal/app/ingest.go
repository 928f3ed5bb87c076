package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"menu_agent/internal/domain"
)

// IngestResult summarises one imported restaurant.
type IngestResult struct {
	RestaurantID int64
	Name         string
	Items        int
	Skipped      int
	Existing     bool
}

// IngestionService copies restaurants and items from an upstream menu API
// into the local catalog. Restaurants already present (same name and city,
// case-insensitive) are not imported again.
type IngestionService struct {
	src     domain.CatalogSource
	catalog *CatalogService
	repo    domain.CatalogRepository

	once  sync.Once
	mu    sync.Mutex
	known map[string]struct{}
	err   error
}

func NewIngestionService(src domain.CatalogSource, repo domain.CatalogRepository, catalog *CatalogService) *IngestionService {
	return &IngestionService{src: src, repo: repo, catalog: catalog}
}

// FetchRestaurants lists the upstream restaurant payloads.
func (s *IngestionService) FetchRestaurants(ctx context.Context) ([]map[string]any, error) {
	ps, err := s.src.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch restaurants: %w", err)
	}
	return ps, nil
}

// IngestRestaurant imports one upstream restaurant and its items. Items that
// fail validation are skipped; an upstream 404 on the item list means "no
// items". Safe for concurrent use.
func (s *IngestionService) IngestRestaurant(ctx context.Context, payload map[string]any) (IngestResult, error) {
	upstreamID, in := mapRestaurant(payload)
	in.normalize()
	res := IngestResult{Name: in.Name}

	claimed, err := s.claim(ctx, in)
	if err != nil {
		return res, err
	}
	if !claimed {
		res.Existing = true
		return res, nil
	}

	r, err := s.catalog.CreateRestaurant(ctx, in)
	if err != nil {
		return res, err
	}
	res.RestaurantID = r.ID
	if upstreamID == 0 {
		log.Warn().Str("restaurant", in.Name).Msg("upstream restaurant has no id; items not fetched")
		return res, nil
	}

	raw, err := s.src.ListItems(ctx, upstreamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Int64("upstream_id", upstreamID).Msg("upstream items not found")
			return res, nil
		}
		return res, fmt.Errorf("fetch items for upstream %d: %w", upstreamID, err)
	}
	for _, p := range raw {
		item := mapItem(p)
		if _, err := s.catalog.CreateItem(ctx, r.ID, item); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				log.Warn().Err(err).Int64("upstream_id", upstreamID).Str("item", item.Name).Msg("skip invalid upstream item")
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Items++
	}
	return res, nil
}

// claim reserves (name, city) for this run. It returns false when the
// restaurant is already stored or claimed by another worker.
func (s *IngestionService) claim(ctx context.Context, in RestaurantInput) (bool, error) {
	s.once.Do(func() {
		rs, err := s.repo.ListRestaurants(ctx)
		if err != nil {
			s.err = fmt.Errorf("load existing restaurants: %w", err)
			return
		}
		s.known = make(map[string]struct{}, len(rs))
		for _, r := range rs {
			s.known[restaurantKey(r.Name, r.City)] = struct{}{}
		}
	})
	if s.err != nil {
		return false, s.err
	}
	k := restaurantKey(in.Name, in.City)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.known[k]; ok {
		return false, nil
	}
	s.known[k] = struct{}{}
	return true, nil
}

func restaurantKey(name, city string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" + strings.ToLower(strings.TrimSpace(city))
}
