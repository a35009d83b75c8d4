package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crossred/crossred/pkg/retry"
)

// RedisCache implements Cache on top of a Redis server, suitable for sharing
// reorder results across multiple HTTP API instances.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to a Redis server at addr. It does not ping the
// server eagerly; connection errors surface on the first Get/Set/Delete call.
func NewRedisCache(addr string) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis, retrying transient failures with
// exponential backoff.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var miss bool
	err := retry.RetryWithBackoff(ctx, func() error {
		d, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			miss = true
			return nil
		}
		if err != nil {
			return retry.Retryable(err)
		}
		data = d
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, !miss, nil
}

// Set stores a value in Redis with the given ttl. A zero ttl means no
// expiration, matching redis.Client's own convention.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return retry.RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return retry.Retryable(err)
		}
		return nil
	})
}

// Delete removes a value from Redis. A missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return retry.RetryWithBackoff(ctx, func() error {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			return retry.Retryable(err)
		}
		return nil
	})
}

// Close closes the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
