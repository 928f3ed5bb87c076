package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu_agent/internal/domain"
)

func TestStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	b, err := s.CreateRestaurant(ctx, domain.Restaurant{Name: "Canton Garden"})
	require.NoError(t, err)
	a, err := s.CreateRestaurant(ctx, domain.Restaurant{Name: "Burger & Smoke"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	rs, err := s.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "Burger & Smoke", rs[0].Name)

	_, err = s.CreateItem(ctx, domain.MenuItem{RestaurantID: b.ID, Name: "Siomai", Price: 800})
	require.NoError(t, err)
	_, err = s.CreateItem(ctx, domain.MenuItem{RestaurantID: b.ID, Name: "Har Gow", Price: 850})
	require.NoError(t, err)
	_, err = s.CreateItem(ctx, domain.MenuItem{RestaurantID: a.ID, Name: "Cheeseburger", Price: 1300})
	require.NoError(t, err)

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// ordered by restaurant id, then name
	assert.Equal(t, []string{"Har Gow", "Siomai", "Cheeseburger"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestStore_CreateItemUnknownRestaurant(t *testing.T) {
	s := New()
	_, err := s.CreateItem(context.Background(), domain.MenuItem{RestaurantID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()
	r, _ := s.CreateRestaurant(ctx, domain.Restaurant{Name: "Sichuan House"})
	_, err := s.CreateItem(ctx, domain.MenuItem{RestaurantID: r.ID, Name: "Mapo Tofu", RegionTags: []string{"Sichuan"}})
	require.NoError(t, err)

	snap, _ := s.ListItems(ctx)
	snap[0].RegionTags[0] = "mutated"

	again, _ := s.ListItems(ctx)
	assert.Equal(t, "Sichuan", again[0].RegionTags[0])
}

func TestStore_ResetAndConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	r, _ := s.CreateRestaurant(ctx, domain.Restaurant{Name: "Trattoria Roma"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreateItem(ctx, domain.MenuItem{RestaurantID: r.ID, Name: "Tiramisu"})
			_, _ = s.ListItems(ctx)
		}()
	}
	wg.Wait()

	items, _ := s.ListItems(ctx)
	assert.Len(t, items, 50)

	require.NoError(t, s.Reset(ctx))
	items, _ = s.ListItems(ctx)
	assert.Empty(t, items)
	_, err := s.GetRestaurant(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
