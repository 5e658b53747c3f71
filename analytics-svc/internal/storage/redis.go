package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDashboardCache struct {
	Client *redis.Client
}

func NewRedisDashboardCache(client *redis.Client) *RedisDashboardCache {
	return &RedisDashboardCache{Client: client}
}

func (c *RedisDashboardCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return payload, err
}

func (c *RedisDashboardCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, payload, ttl).Err()
}
