package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeTag trims surrounding whitespace and case-folds the tag with a
// locale-insensitive mapping. An empty result means "no tag".
func NormalizeTag(tag string) string {
	t := strings.TrimSpace(tag)
	if t == "" {
		return ""
	}
	// cases.Caser is stateful; one per call keeps this safe for concurrent use.
	return cases.Fold().String(t)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}
