package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/ports"
)

// RedisRouteCache stores serialized solve outcomes in Redis under a TTL so
// identical optimize requests skip the solver. Keys are namespaced with a
// "route:" prefix so the instance can be shared.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.Client == nil {
		return nil, errors.New("route cache: client is nil")
	}

	payload, err := c.Client.Get(ctx, routeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: %w", err)
	}
	return payload, nil
}

func (c *RedisRouteCache) Set(ctx context.Context, key string, payload []byte) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	if err := c.Client.Set(ctx, routeKey(key), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("set route cache: %w", err)
	}
	return nil
}

func routeKey(key string) string {
	return "route:" + key
}
