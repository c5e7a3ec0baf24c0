package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/lock"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitLocker picks the per-user lock backend. Redis is needed once more than one instance serves traffic.
func (a *application) InitLocker(lc fx.Lifecycle, log *logger.Logger) domain.Locker {
	cfg := a.config.Lock
	if cfg.Driver != "redis" {
		return lock.NewUserLockManager(cfg.Timeout, log)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	manager := lock.NewRedisLockManager(client, cfg.TTL, cfg.Timeout, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Error("Redis is unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
				return err
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return manager.Close()
		},
	})
	return manager
}
