package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSerialised runs workers that all take the same key and reports the
// highest number of them that were ever inside at once
func assertSerialised(t *testing.T, locker domain.Locker, key string) {
	t.Helper()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(ctx, key)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestUserLockManager_SerialisesSameKey(t *testing.T) {
	assertSerialised(t, NewUserLockManager(time.Second, logger.NewNop()), "user:1")
}

func TestUserLockManager_TimeoutDoesNotLeakLock(t *testing.T) {
	m := NewUserLockManager(20*time.Millisecond, logger.NewNop())
	ctx := context.Background()

	release, err := m.Lock(ctx, "k")
	require.NoError(t, err)
	_, err = m.Lock(ctx, "k")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeLockTimeout))

	release()
	release, err = m.Lock(ctx, "k")
	require.NoError(t, err)
	release()
}

func TestUserLockManager_DoubleReleaseFreesOnce(t *testing.T) {
	m := NewUserLockManager(20*time.Millisecond, logger.NewNop())
	ctx := context.Background()

	first, err := m.Lock(ctx, "k")
	require.NoError(t, err)
	first()

	second, err := m.Lock(ctx, "k")
	require.NoError(t, err)
	first()

	_, err = m.Lock(ctx, "k")
	assert.True(t, domain.HasCode(err, domain.ErrCodeLockTimeout))
	second()
}

func TestUserLockManager_IndependentKeys(t *testing.T) {
	m := NewUserLockManager(20*time.Millisecond, logger.NewNop())
	ctx := context.Background()

	releaseA, err := m.Lock(ctx, "a")
	require.NoError(t, err)
	releaseB, err := m.Lock(ctx, "b")
	require.NoError(t, err)
	releaseA()
	releaseB()
}

func TestUserLockManager_ContextCancelled(t *testing.T) {
	m := NewUserLockManager(time.Second, logger.NewNop())
	_, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Lock(ctx, "k")
	assert.True(t, domain.HasCode(err, domain.ErrCodeLockTimeout))
}
