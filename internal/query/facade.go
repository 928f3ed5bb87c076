package query

import "menu_agent/internal/domain"

// ListItems is the list operation.
func ListItems(items []domain.MenuItem, c Criteria) []domain.MenuItem {
	return FilterItems(items, c)
}

// GetRecommendations filters with the same path as ListItems, then ranks.
func GetRecommendations(items []domain.MenuItem, c Criteria, limit int, preferSignature bool) []domain.MenuItem {
	return Recommend(FilterItems(items, c), limit, preferSignature)
}
