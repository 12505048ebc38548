package local

import (
	"context"
	"sync"
	"time"

	"pet-adoption-hub/internal/ports/lock"
)

// Locker es la variante in-process (una sola réplica o tests).
type Locker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewLocker() *Locker {
	return &Locker{held: make(map[string]time.Time), now: time.Now}
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.held[key]; ok && now.Before(until) {
		return nil, lock.ErrNotAcquired
	}
	until := now.Add(ttl)
	l.held[key] = until

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.held[key]; ok && cur.Equal(until) {
			delete(l.held, key)
		}
		return nil
	}, nil
}
