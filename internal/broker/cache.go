package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CategoryCacheKey holds the JSON-encoded category listing.
const CategoryCacheKey = "dwa:categories"

// CategoryCache stores the enriched category aggregation as JSON.
type CategoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCategoryCache returns a cache whose entries expire after ttl.
func NewCategoryCache(rdb *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{rdb: rdb, ttl: ttl}
}

// Get decodes the cached value into dst. found is false on a miss.
func (c *CategoryCache) Get(ctx context.Context, dst any) (found bool, err error) {
	b, err := c.rdb.Get(ctx, CategoryCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", CategoryCacheKey, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", CategoryCacheKey, err)
	}
	return true, nil
}

// Set stores v.
func (c *CategoryCache) Set(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", CategoryCacheKey, err)
	}
	return c.rdb.Set(ctx, CategoryCacheKey, b, c.ttl).Err()
}

// Invalidate removes the cached value.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, CategoryCacheKey).Err()
}
