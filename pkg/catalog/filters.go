package catalog

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

// ErrorTitle is the title of the alert raised for invalid filters.
const ErrorTitle = "Xəta"

// ErrPriceRange reports a minimum price above the maximum.
var ErrPriceRange = errors.New("Minimum qiymət maksimum qiymətdən böyük ola bilməz")

// Filters is the editable state of the filter sheet. Prices are kept as the
// text the user typed.
type Filters struct {
	Categories        []string
	Brands            []string
	MinPrice          string
	MaxPrice          string
	BrandQuery        string
	ShowOnlyAvailable bool
}

// Applied is a validated filter selection.
type Applied struct {
	Categories        []string `json:"categories"`
	MinPrice          float64  `json:"min_price"`
	MaxPrice          float64  `json:"max_price"`
	Brands            []string `json:"brands"`
	ShowOnlyAvailable bool     `json:"show_only_available"`
}

// ToggleCategory selects or deselects id. Selecting CategoryAll clears every
// other category, and selecting any other category clears CategoryAll.
func (f *Filters) ToggleCategory(id string) {
	if id == CategoryAll {
		f.Categories = []string{CategoryAll}
		return
	}
	had := slices.Contains(f.Categories, id)
	next := slices.DeleteFunc(slices.Clone(f.Categories), func(c string) bool {
		return c == CategoryAll || c == id
	})
	if !had {
		next = append(next, id)
	}
	f.Categories = next
}

// ToggleBrand selects or deselects a brand.
func (f *Filters) ToggleBrand(id string) {
	if i := slices.Index(f.Brands, id); i >= 0 {
		f.Brands = slices.Delete(slices.Clone(f.Brands), i, i+1)
		return
	}
	f.Brands = append(f.Brands, id)
}

// SelectPriceRange fills both price fields from a preset.
func (f *Filters) SelectPriceRange(r PriceRange) {
	f.MinPrice = formatPrice(r.Min)
	f.MaxPrice = formatPrice(r.Max)
}

// Reset clears every selection.
func (f *Filters) Reset() {
	*f = Filters{}
}

// MatchingBrands returns the brands matching the current search text.
func (f *Filters) MatchingBrands() []Brand {
	return SearchBrands(f.BrandQuery)
}

// Apply validates the selection. A blank, zero or unparsable minimum means
// 0 and a blank, zero or unparsable maximum means MaxPrice. A minimum above
// the maximum is a validation error wrapping ErrPriceRange.
func (f *Filters) Apply() (Applied, error) {
	minPrice := parsePrice(f.MinPrice, 0)
	maxPrice := parsePrice(f.MaxPrice, MaxPrice)
	if minPrice > maxPrice {
		return Applied{}, kartoerrors.New("catalog.Filters.Apply", kartoerrors.KindValidation, ErrPriceRange)
	}
	return Applied{
		Categories:        slices.Clone(f.Categories),
		MinPrice:          minPrice,
		MaxPrice:          maxPrice,
		Brands:            slices.Clone(f.Brands),
		ShowOnlyAvailable: f.ShowOnlyAvailable,
	}, nil
}

// Restore loads a previously applied selection back into the editor.
func (f *Filters) Restore(a Applied) {
	*f = Filters{
		Categories:        slices.Clone(a.Categories),
		Brands:            slices.Clone(a.Brands),
		ShowOnlyAvailable: a.ShowOnlyAvailable,
	}
	if a.MinPrice != 0 {
		f.MinPrice = formatPrice(a.MinPrice)
	}
	if a.MaxPrice != 0 && a.MaxPrice != MaxPrice {
		f.MaxPrice = formatPrice(a.MaxPrice)
	}
}

// Active reports how many filter groups narrow the catalog.
func (a Applied) Active() int {
	n := 0
	if len(a.Categories) > 0 && !slices.Contains(a.Categories, CategoryAll) {
		n++
	}
	if len(a.Brands) > 0 {
		n++
	}
	if a.MinPrice > 0 || a.MaxPrice < MaxPrice {
		n++
	}
	if a.ShowOnlyAvailable {
		n++
	}
	return n
}

func parsePrice(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
