// Package cache manages the optional Redis client used for rate limiting.
package cache

import (
	"context"
	"log/slog"
	"time"

	"menuboard/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis connects to Redis at the given address. An empty address leaves
// the client nil; callers treat a nil client as "rate limiting disabled".
func InitRedis(url string) {
	if url == "" {
		middleware.Logger.Info("Redis disabled (no REDIS_URL configured)")
		return
	}

	rdb := redis.NewClient(&redis.Options{Addr: url})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing without it",
			slog.String("addr", url),
			slog.String("error", err.Error()),
		)
		_ = rdb.Close()
		return
	}

	client = rdb
	middleware.Logger.Info("Redis connected", slog.String("addr", url))
}

// GetClient returns the shared Redis client, or nil when Redis is disabled.
func GetClient() *redis.Client {
	return client
}
