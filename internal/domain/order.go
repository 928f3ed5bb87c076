package domain

import (
	"cmp"
	"slices"
)

// SortItems puts a snapshot into the canonical (restaurant_id, name, id) order.
func SortItems(items []MenuItem) {
	slices.SortFunc(items, func(a, b MenuItem) int {
		if c := cmp.Compare(a.RestaurantID, b.RestaurantID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortRestaurants orders restaurants by (name, id).
func SortRestaurants(rs []Restaurant) {
	slices.SortFunc(rs, func(a, b Restaurant) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
