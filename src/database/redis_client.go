package database

import (
	"context"
	"fmt"

	"Backend-Survey-Engine/src/logger"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var RedisURI string

// InitRedis connects to addr (e.g. localhost:6379). An empty addr leaves RedisClient nil
// and callers fall back to in-process behavior.
func InitRedis(ctx context.Context, addr string) error {
	if addr == "" {
		logger.Warnf("⚠️ REDIS_URI not set. Running without Redis.")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
	if _, err := c.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	RedisClient = c
	RedisURI = addr
	logger.Infof("✅ Redis connected (%s)", addr)
	return nil
}
