package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired: otro proceso tiene el lock.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker toma un lock con TTL. release libera solo si el lock sigue siendo nuestro.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
