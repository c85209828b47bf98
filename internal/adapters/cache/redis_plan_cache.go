package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"park-itinerary-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "itinerary:plan:"

// Redis backed cache for serialized plan responses.
type RedisPlanCache struct {
	rdb *redis.Client
}

func NewRedisPlanCache(rdb *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb}
}

// Connect to addr and verify it answers PING.
func DialRedisPlanCache(ctx context.Context, addr string) (*RedisPlanCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisPlanCache{rdb: rdb}, nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.redis.Get")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	b, err := c.rdb.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}
	return b, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plan.cache.redis.Put")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert plan cache: empty key")
	}
	if ttl <= 0 {
		return nil
	}

	if err := c.rdb.Set(ctx, planKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error {
	return c.rdb.Close()
}
