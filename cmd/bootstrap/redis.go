package bootstrap

import (
	"context"
	"time"

	redisinfra "casaraiz-backend/internal/infra/redis"
	"casaraiz-backend/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewRateLimiter,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := redisinfra.Connect(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return client, nil
}

// Checkout and webhook endpoints share one per-client budget. Reads are
// served from cache and stay unthrottled.
func NewRateLimiter(rdb *redis.Client) *redisinfra.SlidingWindowLimiter {
	return redisinfra.NewSlidingWindowLimiter(rdb, "api", 60, time.Minute)
}
