package kvstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Memory is an in-memory Store implementation. Useful for tests and
// single-process deployments. Thread-safe via sync.RWMutex.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	logger *slog.Logger
}

// NewMemory creates an empty in-memory store.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		values: make(map[string]string),
		logger: logger,
	}
}

// GetString returns the raw string stored under key.
func (m *Memory) GetString(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok
}

// SetString stores a raw string under key.
func (m *Memory) SetString(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
}

// GetJSON unmarshals the value stored under key into out. A corrupt value is
// logged and treated as absent.
func (m *Memory) GetJSON(ctx context.Context, key string, out any) bool {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		m.logger.WarnContext(ctx, "discarding corrupt stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// SetJSON stores the JSON serialization of value under key. Serialization
// failures are logged and dropped.
func (m *Memory) SetJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to serialize value for storage",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = string(data)
}

// Remove deletes the value under key.
func (m *Memory) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
}

// Has reports whether a value exists under key.
func (m *Memory) Has(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.values[key]
	return ok
}

// Clear removes all stored values.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
}
