// Package memory is an in-process CatalogRepository. Reads return copies, so
// callers may hold snapshots while writers keep going.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"menu_agent/internal/domain"
)

type Store struct {
	mu          sync.RWMutex
	restaurants map[int64]domain.Restaurant
	items       map[int64]domain.MenuItem
	nextRest    int64
	nextItem    int64
	now         func() time.Time
}

func New() *Store {
	return &Store{
		restaurants: map[int64]domain.Restaurant{},
		items:       map[int64]domain.MenuItem{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) CreateRestaurant(ctx context.Context, r domain.Restaurant) (domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRest++
	r.ID = s.nextRest
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	s.restaurants[r.ID] = r
	return r, nil
}

func (s *Store) CreateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[it.RestaurantID]; !ok {
		return domain.MenuItem{}, fmt.Errorf("restaurant %d: %w", it.RestaurantID, domain.ErrNotFound)
	}
	s.nextItem++
	it.ID = s.nextItem
	if it.CreatedAt.IsZero() {
		it.CreatedAt = s.now()
	}
	it.RegionTags = slices.Clone(it.RegionTags)
	it.FlavorTags = slices.Clone(it.FlavorTags)
	s.items[it.ID] = it
	return it, nil
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
	clear(s.restaurants)
	return nil
}

func (s *Store) GetRestaurant(ctx context.Context, id int64) (domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return domain.Restaurant{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	s.mu.RLock()
	out := make([]domain.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, r)
	}
	s.mu.RUnlock()
	domain.SortRestaurants(out)
	return out, nil
}

func (s *Store) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	out := make([]domain.MenuItem, 0, len(s.items))
	for _, it := range s.items {
		it.RegionTags = slices.Clone(it.RegionTags)
		it.FlavorTags = slices.Clone(it.FlavorTags)
		out = append(out, it)
	}
	s.mu.RUnlock()
	domain.SortItems(out)
	return out, nil
}
