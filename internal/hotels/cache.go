package hotels

import (
	"context"
	"fmt"
	"ms-booking/internal/logger"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache backs the catalog cache with Redis. Entries expire after TTL;
// Redis errors degrade to cache misses so the catalog stays available when
// Redis is down.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl, Logger: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("REDIS", fmt.Sprintf("cache get %s: %v", key, err))
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.Client.Set(ctx, key, value, c.TTL).Err(); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("REDIS", fmt.Sprintf("cache set %s: %v", key, err))
		}
	}
}
