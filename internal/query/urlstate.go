package query

import (
	"net/url"
	"strconv"
	"strings"
)

// URL parameter names for encoded query state.
const (
	paramSearch     = "search"
	paramSortBy     = "sortBy"
	paramCategories = "categories"
	paramCategory   = "category"
	paramMinPrice   = "minPrice"
	paramMaxPrice   = "maxPrice"
	paramMinRating  = "minRating"
)

// Encode serializes params as URL query values, omitting anything that
// still holds its default so neutral state produces an empty query.
// maxPrice is the current catalog price bound.
func (p Params) Encode(maxPrice float64) url.Values {
	values := url.Values{}
	if s := strings.TrimSpace(p.Search); s != "" {
		values.Set(paramSearch, s)
	}
	if p.SortBy != "" && p.SortBy != DefaultSort {
		values.Set(paramSortBy, string(p.SortBy))
	}
	if len(p.Filter.Categories) > 0 {
		values.Set(paramCategories, strings.Join(p.Filter.Categories, ","))
	}
	if p.Filter.MinPrice > 0 {
		values.Set(paramMinPrice, formatFloat(p.Filter.MinPrice))
	}
	if p.Filter.MaxPrice > 0 && p.Filter.MaxPrice < maxPrice {
		values.Set(paramMaxPrice, formatFloat(p.Filter.MaxPrice))
	}
	if p.Filter.MinRating > 0 {
		values.Set(paramMinRating, formatFloat(p.Filter.MinRating))
	}
	return values
}

// DecodeParams parses URL query values back into Params. Unknown or
// malformed values fall back to their defaults rather than erroring,
// so a hand-edited URL never breaks the pipeline. maxPrice is the
// current catalog price bound used to fill the default window.
func DecodeParams(values url.Values, maxPrice float64) Params {
	p := DefaultParams(maxPrice)

	p.Search = strings.TrimSpace(values.Get(paramSearch))

	if s := values.Get(paramSortBy); ValidSortKey(s) {
		p.SortBy = SortKey(s)
	}

	if raw := values.Get(paramCategories); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.Filter.Categories = append(p.Filter.Categories, c)
			}
		}
	} else if c := strings.TrimSpace(values.Get(paramCategory)); c != "" {
		// Older links carried a single category parameter.
		p.Filter.Categories = []string{c}
	}

	if v, ok := parsePositiveFloat(values.Get(paramMinPrice)); ok {
		p.Filter.MinPrice = v
	}
	if v, ok := parsePositiveFloat(values.Get(paramMaxPrice)); ok && v <= maxPrice {
		p.Filter.MaxPrice = v
	}
	if v, ok := parsePositiveFloat(values.Get(paramMinRating)); ok && v <= 5 {
		p.Filter.MinRating = v
	}

	if p.Filter.MinPrice > p.Filter.MaxPrice {
		p.Filter.MinPrice = 0
		p.Filter.MaxPrice = maxPrice
	}
	return p
}

func parsePositiveFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
