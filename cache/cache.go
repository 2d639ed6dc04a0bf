package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/logger"
)

// Cache wraps the Redis client behind the cache-aside read path: get JSON if
// present, populate with a TTL on miss, delete on write. Reads fail open:
// a cache error is reported as a miss so the caller falls through to the
// store.
type Cache struct {
	rdb *redis.Client
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr, password string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}

	logger.Get().Info("successfully connected to Redis", zap.String("addr", addr))
	return &Cache{rdb: rdb}, nil
}

// New wraps an existing client, used by tests.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Close releases the underlying client.
func (c *Cache) Close() {
	if err := c.rdb.Close(); err != nil {
		logger.Get().Error("failed to close Redis client", zap.Error(err))
	}
}

// GetJSON loads key into dest and reports whether it was present. Errors
// other than a miss are logged and reported as a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Get().Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Get().Warn("cache entry malformed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores value under key with the entity's TTL. Failure is logged
// and swallowed; the next read simply misses.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, TTLFor(key)).Err(); err != nil {
		logger.Get().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// deleteByPattern scans for keys matching pattern and deletes them.
func (c *Cache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.delete(ctx, keys...)
}
