package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisOptions tunes the Redlock mutexes.
type RedisOptions struct {
	// Expiry bounds how long a crashed holder can block others.
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// DefaultRedisOptions suits ledger operations that finish well within a second.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Expiry:     10 * time.Second,
		Tries:      32,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RedisLocker takes one Redlock mutex per key.
type RedisLocker struct {
	rs     *redsync.Redsync
	prefix string
	opts   []redsync.Option
	logger *slog.Logger
}

// NewRedisLocker creates a RedisLocker. Mutex names are prefix + "lock:" + key.
func NewRedisLocker(client *redis.Client, prefix string, o RedisOptions, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	d := DefaultRedisOptions()
	if o.Expiry <= 0 {
		o.Expiry = d.Expiry
	}
	if o.Tries < 1 {
		o.Tries = d.Tries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = d.RetryDelay
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		opts: []redsync.Option{
			redsync.WithExpiry(o.Expiry),
			redsync.WithTries(o.Tries),
			redsync.WithRetryDelay(o.RetryDelay),
		},
		logger: logger,
	}
}

// Lock implements lock.Locker.
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (lock.Unlock, error) {
	keys = lock.Keys(keys...)
	held := make([]*redsync.Mutex, 0, len(keys))
	for _, k := range keys {
		m := l.rs.NewMutex(l.prefix+"lock:"+k, l.opts...)
		if err := m.LockContext(ctx); err != nil {
			l.unlockAll(context.WithoutCancel(ctx), held)
			return nil, fmt.Errorf("%w: %s: %w", lock.ErrNotAcquired, k, err)
		}
		held = append(held, m)
	}
	var once sync.Once
	return func() {
		once.Do(func() { l.unlockAll(context.WithoutCancel(ctx), held) })
	}, nil
}

func (l *RedisLocker) unlockAll(ctx context.Context, held []*redsync.Mutex) {
	for i := len(held) - 1; i >= 0; i-- {
		ok, err := held[i].UnlockContext(ctx)
		if err != nil {
			l.logger.Error("failed to release lock", "name", held[i].Name(), "error", err)
			continue
		}
		if !ok {
			l.logger.Warn("lock was not held or already expired", "name", held[i].Name())
		}
	}
}

var _ lock.Locker = (*RedisLocker)(nil)
