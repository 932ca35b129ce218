package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type brandSource []Brand

func (s brandSource) String(i int) string { return s[i].Name }
func (s brandSource) Len() int            { return len(s) }

// SearchBrands returns the brands whose names fuzzy-match query, best match
// first. A blank query returns every brand in display order.
func SearchBrands(query string) []Brand {
	query = strings.TrimSpace(query)
	if query == "" {
		return Brands()
	}
	matches := fuzzy.FindFrom(query, brandSource(brands))
	out := make([]Brand, len(matches))
	for i, m := range matches {
		out[i] = brands[m.Index]
	}
	return out
}
