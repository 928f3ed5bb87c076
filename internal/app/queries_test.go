package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"menu_agent/internal/app"
	"menu_agent/internal/domain"
	"menu_agent/internal/query"
	"menu_agent/internal/storage/memory"
)

// ---- fakes ----

// countingRepo counts snapshot loads on top of the in-memory store.
type countingRepo struct {
	*memory.Store
	itemLoads int
	restLoads int
}

func (r *countingRepo) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	r.itemLoads++
	return r.Store.ListItems(ctx)
}

func (r *countingRepo) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	r.restLoads++
	return r.Store.ListRestaurants(ctx)
}

type fakeCache struct {
	store map[string]any
	dels  []string
	fail  bool
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.fail {
		return false, errors.New("cache down")
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.MenuItem:
		*d = v.([]domain.MenuItem)
	case *[]domain.Restaurant:
		*d = v.([]domain.Restaurant)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.fail {
		return errors.New("cache down")
	}
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func seeded(t *testing.T, cache domain.Cache) (*countingRepo, *app.QueryService, *app.CatalogService) {
	t.Helper()
	repo := &countingRepo{Store: memory.New()}
	cat := app.NewCatalogService(repo, cache)
	if ok, err := cat.Seed(context.Background()); err != nil || !ok {
		t.Fatalf("seed: ok=%v err=%v", ok, err)
	}
	repo.itemLoads, repo.restLoads = 0, 0
	return repo, app.NewQueryService(repo, cache, 10*time.Minute), cat
}

// ---- tests ----

func TestListItems_CacheMissThenHit(t *testing.T) {
	cache := &fakeCache{}
	repo, q, _ := seeded(t, cache)
	ctx := context.Background()

	first, err := q.ListItems(ctx, query.Criteria{Region: "sichuan"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("want 3 Sichuan items, got %d", len(first))
	}
	second, err := q.ListItems(ctx, query.Criteria{Flavor: "SWEET"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("want 2 sweet items, got %d", len(second))
	}
	if repo.itemLoads != 1 {
		t.Fatalf("expected a single store load, got %d", repo.itemLoads)
	}
}

func TestListRestaurants_Cached(t *testing.T) {
	cache := &fakeCache{}
	repo, q, _ := seeded(t, cache)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rs, err := q.ListRestaurants(ctx)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if len(rs) != 4 || rs[0].Name != "Burger & Smoke" {
			t.Fatalf("unexpected restaurants: %+v", rs)
		}
	}
	if repo.restLoads != 1 {
		t.Fatalf("expected one store load, got %d", repo.restLoads)
	}
}

func TestWriteInvalidatesSnapshot(t *testing.T) {
	cache := &fakeCache{}
	repo, q, cat := seeded(t, cache)
	ctx := context.Background()

	if _, err := q.ListItems(ctx, query.Criteria{}); err != nil {
		t.Fatal(err)
	}
	rs, _ := q.ListRestaurants(ctx)
	p := 3.0
	if _, err := cat.CreateItem(ctx, rs[0].ID, app.ItemInput{Name: "Pickles", Price: &p}); err != nil {
		t.Fatal(err)
	}
	items, err := q.ListItems(ctx, query.Criteria{Q: "pickles"})
	if err != nil {
		t.Fatal(err)
	}
	// Cheeseburger and the fried chicken sandwich mention pickles too.
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}
	if repo.itemLoads != 2 {
		t.Fatalf("expected reload after write, got %d loads", repo.itemLoads)
	}
}

func TestCacheFailureFallsBackToStore(t *testing.T) {
	cache := &fakeCache{}
	_, q, _ := seeded(t, cache)
	cache.fail = true

	items, err := q.ListItems(context.Background(), query.Criteria{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(items) != 12 {
		t.Fatalf("want 12 items, got %d", len(items))
	}
}

func TestRecommend_SignatureFirstWithinLimit(t *testing.T) {
	_, q, _ := seeded(t, nil)
	ctx := context.Background()

	rec, err := q.Recommend(ctx, app.RecommendParams{
		Criteria:        query.Criteria{Flavor: "spicy"},
		Limit:           3,
		PreferSignature: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Note != "" {
		t.Fatalf("unexpected note %q", rec.Note)
	}
	got := names(rec.Items)
	// snapshot order is (restaurant_id, name, id): Dan Dan before Mapo
	want := []string{"Dan Dan Noodles", "Mapo Tofu", "Kung Pao Chicken"}
	if !equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRecommend_EmptyAddsNote(t *testing.T) {
	_, q, _ := seeded(t, nil)
	ceiling := domain.Price(100)
	rec, err := q.Recommend(context.Background(), app.RecommendParams{
		Criteria:        query.Criteria{MaxPrice: &ceiling},
		Limit:           3,
		PreferSignature: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Items) != 0 || rec.Items == nil {
		t.Fatalf("want empty non-nil items, got %#v", rec.Items)
	}
	if rec.Note != app.EmptyRecommendationNote {
		t.Fatalf("unexpected note %q", rec.Note)
	}
}

func TestListItems_UnknownRestaurantIsEmpty(t *testing.T) {
	_, q, _ := seeded(t, nil)
	id := int64(999)
	items, err := q.ListItems(context.Background(), query.Criteria{RestaurantID: &id})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("want no items, got %d", len(items))
	}
}

func names(items []domain.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
