// Package lock provides the Locker backends: an in-process keyed mutex and
// a Redis (Redlock) implementation for multi-process deployments.
package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirasaad/agribank/pkg/lock"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker is a keyed mutex. Slots are created on demand and dropped
// once nobody holds or waits on them.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// NewMemoryLocker returns an empty MemoryLocker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]*slot)}
}

// Lock implements lock.Locker.
func (l *MemoryLocker) Lock(ctx context.Context, keys ...string) (lock.Unlock, error) {
	keys = lock.Keys(keys...)
	held := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := l.acquire(ctx, k); err != nil {
			l.releaseAll(held)
			return nil, err
		}
		held = append(held, k)
	}
	var once sync.Once
	return func() { once.Do(func() { l.releaseAll(held) }) }, nil
}

func (l *MemoryLocker) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.release(key, false)
		return fmt.Errorf("%w: %s: %w", lock.ErrNotAcquired, key, ctx.Err())
	}
}

func (l *MemoryLocker) releaseAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.release(keys[i], true)
	}
}

func (l *MemoryLocker) release(key string, held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[key]
	if held {
		<-s.ch
	}
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

var _ lock.Locker = (*MemoryLocker)(nil)
