package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "menu_agent/internal/adapters/redis"
	"menu_agent/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	require.NoError(t, c.Ping(ctx))

	items := []domain.MenuItem{{ID: 1, RestaurantID: 2, Name: "Roast Duck", Price: 2400, RegionTags: []string{"Cantonese"}}}
	require.NoError(t, c.Set(ctx, "catalog:items", items, 60))
	assert.True(t, mr.Exists("menu:catalog:items"))

	var got []domain.MenuItem
	ok, err := c.Get(ctx, "catalog:items", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Price(2400), got[0].Price)
	assert.Equal(t, []string{"Cantonese"}, got[0].RegionTags)

	require.NoError(t, c.Del(ctx, "catalog:items"))
	ok, err = c.Get(ctx, "catalog:items", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	require.NoError(t, c.Set(ctx, "k", "v", 5))

	mr.FastForward(6 * time.Second)

	var s string
	ok, err := c.Get(ctx, "k", &s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	mr.Close()

	var s string
	ok, err := c.Get(ctx, "k", &s)
	assert.False(t, ok)
	assert.Error(t, err)
}
