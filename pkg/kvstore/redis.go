package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// TTL is applied to every written key. Zero means no expiry.
	TTL time.Duration
}

// DefaultRedisConfig returns sensible defaults for Redis.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		TTL:  24 * time.Hour,
	}
}

// Redis is a Store implementation backed by a Redis server, used when
// session state must survive process restarts or be shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis creates a Redis-backed store and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

// Ping checks the Redis connection, for use as a readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// GetString returns the raw string stored under key. Backend errors are
// logged and treated as absence.
func (r *Redis) GetString(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "redis read failed, treating as absent",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return "", false
	}
	return value, true
}

// SetString stores a raw string under key. Backend errors are logged and dropped.
func (r *Redis) SetString(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// GetJSON unmarshals the value stored under key into out. Backend errors and
// corrupt values are logged and treated as absent.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) bool {
	raw, ok := r.GetString(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		r.logger.WarnContext(ctx, "discarding corrupt stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// SetJSON stores the JSON serialization of value under key.
func (r *Redis) SetJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to serialize value for storage",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	r.SetString(ctx, key, string(data))
}

// Remove deletes the value under key.
func (r *Redis) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis delete failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Has reports whether a value exists under key.
func (r *Redis) Has(ctx context.Context, key string) bool {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.WarnContext(ctx, "redis exists check failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return n > 0
}
