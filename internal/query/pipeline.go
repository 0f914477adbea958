// Package query implements the product browsing pipeline: free-text
// search, attribute filters, stable sorting and type-ahead suggestions
// over an in-memory product slice.
package query

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/RedDotz20/storeapi/internal/domain"
)

// SortKey identifies one of the supported result orderings.
type SortKey string

const (
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortRatingDesc SortKey = "rating_desc"
)

// DefaultSort is applied when no explicit ordering is requested.
const DefaultSort = SortRatingDesc

// ValidSortKey reports whether s names a supported ordering.
func ValidSortKey(s string) bool {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return true
	}
	return false
}

// Filter restricts results by product attributes. All populated
// conditions must hold for a product to pass.
type Filter struct {
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
}

// Params is the full set of query inputs applied to the catalog.
type Params struct {
	Search string
	SortBy SortKey
	Filter Filter
}

// DefaultParams returns the neutral query: no search text, default
// ordering and a price window of [0, maxPrice].
func DefaultParams(maxPrice float64) Params {
	return Params{
		SortBy: DefaultSort,
		Filter: Filter{MaxPrice: maxPrice},
	}
}

// MaxPriceBound computes the upper price slider bound for a product
// set: the highest price rounded up to the nearest multiple of ten.
// An empty set yields a bound of zero.
func MaxPriceBound(products []domain.Product) float64 {
	var top float64
	for _, p := range products {
		if p.Price > top {
			top = p.Price
		}
	}
	return math.Ceil(top/10) * 10
}

// Apply runs the full pipeline over products and returns a new slice:
// search match, then filters, then a stable sort. The input slice is
// never modified.
func Apply(products []domain.Product, params Params) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesSearch(p, params.Search) && matchesFilter(p, params.Filter) {
			out = append(out, p)
		}
	}
	sortProducts(out, params.SortBy)
	return out
}

// matchesSearch does a case-insensitive substring match against the
// title, description and category. Blank search text matches everything.
func matchesSearch(p domain.Product, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

func matchesFilter(p domain.Product, f Filter) bool {
	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if p.Rating.Rate < f.MinRating {
		return false
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, key SortKey) {
	if key == "" {
		key = DefaultSort
	}
	switch key {
	case SortNameAsc, SortNameDesc:
		coll := collate.New(language.English, collate.Loose)
		asc := key == SortNameAsc
		sort.SliceStable(products, func(i, j int) bool {
			cmp := coll.CompareString(products[i].Title, products[j].Title)
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortRatingAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating.Rate < products[j].Rating.Rate })
	default:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating.Rate > products[j].Rating.Rate })
	}
}
