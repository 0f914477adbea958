package query

import (
	"net/url"
	"sync"
	"time"

	"github.com/RedDotz20/storeapi/internal/domain"
)

// View holds the live browsing state for one session: the product set,
// the committed query parameters and the in-flight search input with
// its suggestion dropdown. Search text only reaches the pipeline after
// the debounce delay, while suggestions track the raw input directly.
type View struct {
	mu        sync.Mutex
	products  []domain.Product
	maxPrice  float64
	params    Params
	rawSearch string
	debouncer *Debouncer

	suggestions []string
	cursor      int
	open        bool
}

// NewView builds a View over products with neutral query state.
func NewView(products []domain.Product, debounce time.Duration) *View {
	maxPrice := MaxPriceBound(products)
	return &View{
		products:  products,
		maxPrice:  maxPrice,
		params:    DefaultParams(maxPrice),
		debouncer: NewDebouncer(debounce),
		cursor:    -1,
	}
}

// SetProducts replaces the backing product set, recomputing the price
// bound and widening the price window if it covered the full range.
func (v *View) SetProducts(products []domain.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	atBound := v.params.Filter.MaxPrice == v.maxPrice
	v.products = products
	v.maxPrice = MaxPriceBound(products)
	if atBound {
		v.params.Filter.MaxPrice = v.maxPrice
	}
}

// SetSearch records new raw input: the suggestion list refreshes
// immediately and the committed search text follows after the
// debounce delay. Earlier pending commits are cancelled.
func (v *View) SetSearch(input string) {
	v.mu.Lock()
	v.rawSearch = input
	v.suggestions = Suggest(v.products, input, 0)
	v.open = len(v.suggestions) > 0
	v.cursor = -1
	v.mu.Unlock()

	v.debouncer.Trigger(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.rawSearch == input {
			v.params.Search = input
		}
	})
}

// Search returns the raw, not yet committed, input text.
func (v *View) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rawSearch
}

// Suggestions returns the current dropdown entries and cursor index.
// The cursor is -1 when nothing is highlighted.
func (v *View) Suggestions() ([]string, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return nil, -1
	}
	out := make([]string, len(v.suggestions))
	copy(out, v.suggestions)
	return out, v.cursor
}

// MoveCursor shifts the highlighted suggestion by delta, clamped to
// [-1, len-1] so stepping above the list clears the highlight.
func (v *View) MoveCursor(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return
	}
	v.cursor += delta
	if v.cursor < -1 {
		v.cursor = -1
	}
	if max := len(v.suggestions) - 1; v.cursor > max {
		v.cursor = max
	}
}

// CommitSelection accepts the highlighted suggestion, or the raw input
// when nothing is highlighted, applying it to the pipeline immediately
// and closing the dropdown.
func (v *View) CommitSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.debouncer.Stop()
	if v.open && v.cursor >= 0 && v.cursor < len(v.suggestions) {
		v.rawSearch = v.suggestions[v.cursor]
	}
	v.params.Search = v.rawSearch
	v.open = false
	v.cursor = -1
}

// Dismiss closes the dropdown without changing the committed search.
func (v *View) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = false
	v.cursor = -1
}

// Params returns a snapshot of the committed query parameters.
func (v *View) Params() Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// SetSort changes the result ordering. Unknown keys are ignored.
func (v *View) SetSort(key SortKey) {
	if !ValidSortKey(string(key)) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.params.SortBy = key
}

// SetFilter replaces the attribute filters wholesale.
func (v *View) SetFilter(f Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.params.Filter = f
}

// Reset restores the neutral query and clears search state.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.debouncer.Stop()
	v.params = DefaultParams(v.maxPrice)
	v.rawSearch = ""
	v.suggestions = nil
	v.open = false
	v.cursor = -1
}

// Results runs the pipeline over the product set with the committed
// parameters.
func (v *View) Results() []domain.Product {
	v.mu.Lock()
	products := v.products
	params := v.params
	v.mu.Unlock()
	return Apply(products, params)
}

// MaxPrice returns the current catalog price bound.
func (v *View) MaxPrice() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxPrice
}

// ApplyQuery restores committed state from URL values, bypassing the
// debounce since the text arrives already committed.
func (v *View) ApplyQuery(values url.Values) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.debouncer.Stop()
	v.params = DecodeParams(values, v.maxPrice)
	v.rawSearch = v.params.Search
	v.suggestions = nil
	v.open = false
	v.cursor = -1
}

// QueryString encodes the committed state for the address bar, empty
// when everything is at its default.
func (v *View) QueryString() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params.Encode(v.maxPrice).Encode()
}
