package domain

import "context"

// CatalogRepository is the item store. ListItems returns a full snapshot
// ordered by (restaurant_id, name, id); ListRestaurants is ordered by (name, id).
type CatalogRepository interface {
	// Write paths
	CreateRestaurant(ctx context.Context, r Restaurant) (Restaurant, error)
	CreateItem(ctx context.Context, it MenuItem) (MenuItem, error)
	Reset(ctx context.Context) error

	// Read paths
	GetRestaurant(ctx context.Context, id int64) (Restaurant, error)
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	ListItems(ctx context.Context) ([]MenuItem, error)
}

// CatalogSource is an upstream menu API the ingestor imports from.
type CatalogSource interface {
	ListRestaurants(ctx context.Context) ([]map[string]any, error)
	ListItems(ctx context.Context, restaurantID int64) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
