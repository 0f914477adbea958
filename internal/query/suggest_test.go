package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedDotz20/storeapi/internal/domain"
)

func TestSuggest_MatchesTitleCaseInsensitively(t *testing.T) {
	got := Suggest(fixtureProducts(), "GAMING", 0)
	assert.Equal(t, []string{"Samsung 49-Inch Gaming Monitor"}, got)
}

func TestSuggest_ShortInputYieldsNothing(t *testing.T) {
	assert.Nil(t, Suggest(fixtureProducts(), "g", 0))
	assert.Nil(t, Suggest(fixtureProducts(), "", 0))
	assert.Nil(t, Suggest(fixtureProducts(), " x ", 0))
}

func TestSuggest_CapsAtLimit(t *testing.T) {
	products := make([]domain.Product, 0, 10)
	for i := 0; i < 10; i++ {
		products = append(products, domain.Product{ID: i, Title: fmt.Sprintf("Widget %d", i)})
	}

	got := Suggest(products, "widget", 0)
	assert.Len(t, got, SuggestLimit)
}

func TestSuggest_CustomLimit(t *testing.T) {
	products := make([]domain.Product, 0, 10)
	for i := 0; i < 10; i++ {
		products = append(products, domain.Product{ID: i, Title: fmt.Sprintf("Widget %d", i)})
	}

	got := Suggest(products, "widget", 3)
	assert.Len(t, got, 3)
}

func TestSuggest_DeduplicatesTitles(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "Blue Hoodie"},
		{ID: 2, Title: "Blue Hoodie"},
		{ID: 3, Title: "Blue Scarf"},
	}

	got := Suggest(products, "blue", 0)
	assert.Equal(t, []string{"Blue Hoodie", "Blue Scarf"}, got)
}

func TestSuggest_NoMatches(t *testing.T) {
	assert.Empty(t, Suggest(fixtureProducts(), "zzzz", 0))
}
