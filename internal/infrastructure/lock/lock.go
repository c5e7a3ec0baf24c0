package lock

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserLockManager is an in-process keyed lock. Each key owns a one-slot
// semaphore so a waiter that gives up never leaves the key held.
type UserLockManager struct {
	locks   sync.Map // map[string]chan struct{}
	timeout time.Duration
	logger  *logger.Logger
}

// NewUserLockManager creates a lock manager whose Lock gives up after timeout
func NewUserLockManager(timeout time.Duration, log *logger.Logger) *UserLockManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	log.Info("UserLockManager initialized", zap.Duration("timeout", timeout))
	return &UserLockManager{
		timeout: timeout,
		logger:  log,
	}
}

// Lock acquires the lock for key, waiting at most the configured timeout
func (m *UserLockManager) Lock(ctx context.Context, key string) (func(), error) {
	sem := m.semaphore(key)

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		m.logger.Debug("Lock acquired", zap.String("key", key))
		return m.releaser(key, sem), nil
	case <-ctx.Done():
		m.logger.Warn("Failed to acquire lock: context cancelled", zap.String("key", key), zap.Error(ctx.Err()))
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Request cancelled while waiting for lock", http.StatusServiceUnavailable, ctx.Err())
	case <-timer.C:
		m.logger.Warn("Failed to acquire lock: timeout", zap.String("key", key), zap.Duration("timeout", m.timeout))
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Too many concurrent requests, try again", http.StatusServiceUnavailable, nil)
	}
}

// releaser frees the slot once, however often it is called
func (m *UserLockManager) releaser(key string, sem chan struct{}) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-sem
			m.logger.Debug("Lock released", zap.String("key", key))
		})
	}
}

func (m *UserLockManager) semaphore(key string) chan struct{} {
	if v, ok := m.locks.Load(key); ok {
		return v.(chan struct{})
	}
	actual, _ := m.locks.LoadOrStore(key, make(chan struct{}, 1))
	return actual.(chan struct{})
}
