package query

import (
	"slices"

	"menu_agent/internal/domain"
)

// Recommend orders an already filtered sequence and truncates it to limit.
// With preferSignature, signature items move ahead of the rest; otherwise
// and among equals the input order is kept. limit <= 0 yields an empty result.
func Recommend(items []domain.MenuItem, limit int, preferSignature bool) []domain.MenuItem {
	if limit <= 0 || len(items) == 0 {
		return []domain.MenuItem{}
	}
	out := slices.Clone(items)
	if preferSignature {
		slices.SortStableFunc(out, func(a, b domain.MenuItem) int {
			return signatureRank(a) - signatureRank(b)
		})
	}
	if len(out) > limit {
		out = out[:limit:limit]
	}
	return out
}

func signatureRank(it domain.MenuItem) int {
	if it.IsSignature {
		return 0
	}
	return 1
}
