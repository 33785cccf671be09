package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisReviewCache keeps a marker per reviewed order.
type RedisReviewCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisReviewCache(client *redis.Client, ttl time.Duration) *RedisReviewCache {
	return &RedisReviewCache{Client: client, TTL: ttl}
}

func (c *RedisReviewCache) ReviewMarkerKey(orderID uint) string {
	return "review:order:" + strconv.FormatUint(uint64(orderID), 10)
}

func (c *RedisReviewCache) IsReviewed(ctx context.Context, orderID uint) (bool, error) {
	res, err := c.Client.Exists(ctx, c.ReviewMarkerKey(orderID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisReviewCache) MarkReviewed(ctx context.Context, orderID uint) error {
	return c.Client.Set(ctx, c.ReviewMarkerKey(orderID), "1", c.TTL).Err()
}
