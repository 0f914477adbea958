package kvstore

import (
	"context"
)

// Store is a key-value store with fail-soft semantics: backend or decode
// failures on read are logged and reported as absence, and write failures
// are logged and dropped. Callers degrade to defaults instead of crashing.
//
// Values written via SetJSON are stored JSON-serialized; SetString stores
// the raw string without quoting.
type Store interface {
	// GetString returns the raw string stored under key.
	GetString(ctx context.Context, key string) (string, bool)

	// SetString stores a raw string under key.
	SetString(ctx context.Context, key, value string)

	// GetJSON unmarshals the value stored under key into out.
	// Corrupt values are treated as absent.
	GetJSON(ctx context.Context, key string, out any) bool

	// SetJSON stores the JSON serialization of value under key.
	SetJSON(ctx context.Context, key string, value any)

	// Remove deletes the value under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string)

	// Has reports whether a value exists under key.
	Has(ctx context.Context, key string) bool
}
