package lock

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const redisRetryInterval = 25 * time.Millisecond

// unlockScript deletes the key only while it still carries our token
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockManager is a keyed lock shared by every instance that talks to the same Redis
type RedisLockManager struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *logger.Logger
}

// NewRedisLockManager creates a Redis backed lock manager. ttl bounds how long a
// crashed holder can block a key.
func NewRedisLockManager(client redis.UniversalClient, ttl, timeout time.Duration, log *logger.Logger) *RedisLockManager {
	return &RedisLockManager{
		client:  client,
		prefix:  "casino:lock:",
		ttl:     ttl,
		timeout: timeout,
		logger:  log,
	}
}

// Lock polls SET NX until it wins the key or the timeout elapses. Every
// acquisition carries its own token, so a holder whose TTL ran out cannot
// release the key for whoever took it next.
func (m *RedisLockManager) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(m.timeout)

	for {
		ok, err := m.client.SetNX(ctx, m.prefix+key, token, m.ttl).Result()
		if err != nil {
			m.logger.Error("Redis lock attempt failed", zap.String("key", key), zap.Error(err))
			return nil, domain.NewInternalError("Failed to acquire lock", fmt.Errorf("redis setnx %s: %w", key, err))
		}
		if ok {
			m.logger.Debug("Redis lock acquired", zap.String("key", key))
			return m.releaser(ctx, key, token), nil
		}
		if time.Now().After(deadline) {
			m.logger.Warn("Failed to acquire redis lock: timeout", zap.String("key", key), zap.Duration("timeout", m.timeout))
			return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Too many concurrent requests, try again", http.StatusServiceUnavailable, nil)
		}

		select {
		case <-ctx.Done():
			return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Request cancelled while waiting for lock", http.StatusServiceUnavailable, ctx.Err())
		case <-time.After(redisRetryInterval):
		}
	}
}

// releaser deletes the key only while it still holds token
func (m *RedisLockManager) releaser(ctx context.Context, key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be done; release on a fresh one.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			deleted, err := unlockScript.Run(releaseCtx, m.client, []string{m.prefix + key}, token).Int()
			if err != nil {
				m.logger.Error("Failed to release redis lock", zap.String("key", key), zap.Error(err))
				return
			}
			if deleted == 0 {
				m.logger.Warn("Redis lock expired before release", zap.String("key", key))
			}
		})
	}
}

// Close closes the Redis client
func (m *RedisLockManager) Close() error {
	return m.client.Close()
}
