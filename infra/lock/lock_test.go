package lock_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	infralock "github.com/amirasaad/agribank/infra/lock"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*infralock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := infralock.NewRedisLocker(client, "test:", infralock.RedisOptions{
		Expiry:     5 * time.Second,
		Tries:      3,
		RetryDelay: 10 * time.Millisecond,
	}, slog.New(slog.DiscardHandler))
	return l, mr
}

func lockers(t *testing.T) map[string]lock.Locker {
	redisLocker, _ := newRedisLocker(t)
	return map[string]lock.Locker{
		"memory": infralock.NewMemoryLocker(),
		"redis":  redisLocker,
	}
}

func TestLocker_MutualExclusion(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			var inside, overlaps, done atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					// Redis tries are finite; retry until we get it.
					for {
						unlock, err := l.Lock(context.Background(), "account:x")
						if err != nil {
							continue
						}
						if inside.Add(1) != 1 {
							overlaps.Add(1)
						}
						time.Sleep(time.Millisecond)
						inside.Add(-1)
						done.Add(1)
						unlock()
						return
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, int32(8), done.Load())
			assert.Zero(t, overlaps.Load())
		})
	}
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			unlock, err := l.Lock(context.Background(), "a", "b")
			require.NoError(t, err)
			unlock()
			unlock()

			unlock, err = l.Lock(context.Background(), "b", "a")
			require.NoError(t, err)
			unlock()
		})
	}
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	l := infralock.NewMemoryLocker()
	unlock, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "b", "a")
	require.ErrorIs(t, err, lock.ErrNotAcquired)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// "b" was released when "a" could not be taken.
	unlockB, err := l.Lock(context.Background(), "b")
	require.NoError(t, err)
	unlockB()
}

func TestRedisLocker_BusyKey(t *testing.T) {
	l, mr := newRedisLocker(t)
	unlock, err := l.Lock(context.Background(), "account:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:account:1"))

	_, err = l.Lock(context.Background(), "account:0", "account:1")
	require.ErrorIs(t, err, lock.ErrNotAcquired)
	assert.False(t, mr.Exists("test:lock:account:0"), "partial acquisition must be rolled back")

	unlock()
	assert.False(t, mr.Exists("test:lock:account:1"))
}
