package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis the cache uses.
// redis.UniversalClient satisfies it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis stores JSON-encoded values in Redis under prefix+key.
type Redis[V any] struct {
	client     RedisClient
	prefix     string
	defaultTTL time.Duration
}

// NewRedis creates a Redis cache. A zero defaultTTL means 1 hour.
//
// Example:
//
//	client, _ := redis.Open(ctx, cfg.Redis)
//	c := cache.NewRedis[[]store.Question](client, "quiz:cache:", time.Minute)
func NewRedis[V any](client RedisClient, prefix string, ttl time.Duration) *Redis[V] {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Redis[V]{client: client, prefix: prefix, defaultTTL: ttl}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var v V
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	// go-redis treats 0 as no expiration.
	return r.client.Set(ctx, r.prefix+key, b, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

var _ Cache[any] = (*Redis[any])(nil)
