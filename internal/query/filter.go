package query

import (
	"strings"

	"golang.org/x/text/cases"

	"menu_agent/internal/domain"
)

// Criteria is a conjunction of optional constraints. Nil pointers and empty
// strings mean "not specified".
type Criteria struct {
	RestaurantID *int64
	Q            string
	Region       string
	Flavor       string
	IsSignature  *bool
	MaxPrice     *domain.Price
}

type matcher struct {
	restaurantID *int64
	q            string
	region       string
	flavor       string
	isSignature  *bool
	maxPrice     *domain.Price
}

func (c Criteria) compile() matcher {
	return matcher{
		restaurantID: c.RestaurantID,
		q:            foldQuery(c.Q),
		region:       NormalizeTag(c.Region),
		flavor:       NormalizeTag(c.Flavor),
		isSignature:  c.IsSignature,
		maxPrice:     c.MaxPrice,
	}
}

func (m matcher) match(it *domain.MenuItem) bool {
	if m.restaurantID != nil && it.RestaurantID != *m.restaurantID {
		return false
	}
	if m.isSignature != nil && it.IsSignature != *m.isSignature {
		return false
	}
	if m.maxPrice != nil && it.Price > *m.maxPrice {
		return false
	}
	if m.q != "" && !containsFold(it.Name, m.q) && !containsFold(it.Description, m.q) {
		return false
	}
	if m.region != "" && !hasTag(it.RegionTags, m.region) {
		return false
	}
	if m.flavor != "" && !hasTag(it.FlavorTags, m.flavor) {
		return false
	}
	return true
}

// foldQuery case-folds q but keeps its spaces: " sum" only matches a word
// ending in "sum" preceded by a space. Blank q means no constraint.
func foldQuery(q string) string {
	if strings.TrimSpace(q) == "" {
		return ""
	}
	return cases.Fold().String(q)
}

// containsFold reports whether folded needle occurs in s, ignoring case.
func containsFold(s, needle string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(cases.Fold().String(s), needle)
}

// FilterItems keeps the items matching every present criterion, in input
// order. The result never aliases the input's backing array.
func FilterItems(items []domain.MenuItem, c Criteria) []domain.MenuItem {
	m := c.compile()
	out := make([]domain.MenuItem, 0, len(items))
	for i := range items {
		if m.match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
