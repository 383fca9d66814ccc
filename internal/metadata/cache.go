package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-serialisable metadata. Rendered images are never cached.
type Cache interface {
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// NullCache never stores anything.
type NullCache struct{}

func (NullCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NullCache) Set(context.Context, string, any) error         { return nil }

// RedisCache keeps entries in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to the Redis server at url (redis://...).
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts), ttl: ttl, prefix: "poster:"}, nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, v any) (bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, b, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Cached fills v from the cache, or runs fetch and stores the result.
// Cache failures are not fatal; fetch errors are returned as is.
func Cached(ctx context.Context, c Cache, key string, v any, fetch func() error) error {
	if c == nil {
		return fetch()
	}
	if ok, _ := c.Get(ctx, key, v); ok {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	_ = c.Set(ctx, key, v)
	return nil
}
