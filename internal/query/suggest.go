package query

import (
	"strings"

	"github.com/RedDotz20/storeapi/internal/domain"
)

// SuggestLimit caps how many type-ahead suggestions are produced.
const SuggestLimit = 5

// MinSuggestLength is the shortest input that yields suggestions.
const MinSuggestLength = 2

// Suggest returns up to limit distinct product titles whose title
// contains the input, case-insensitively. A non-positive limit falls
// back to SuggestLimit. Inputs shorter than MinSuggestLength produce
// no suggestions.
func Suggest(products []domain.Product, input string, limit int) []string {
	if limit <= 0 {
		limit = SuggestLimit
	}
	needle := strings.ToLower(strings.TrimSpace(input))
	if len(needle) < MinSuggestLength {
		return nil
	}

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if _, dup := seen[p.Title]; dup {
			continue
		}
		seen[p.Title] = struct{}{}
		out = append(out, p.Title)
		if len(out) == limit {
			break
		}
	}
	return out
}
