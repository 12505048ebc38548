package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-hub/internal/ports/lock"
)

func TestLocker_ExclusiveUntilRelease(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "ranking-reset", time.Minute)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := l.Acquire(ctx, "ranking-reset", time.Minute); !errors.Is(err, lock.ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := l.Acquire(ctx, "ranking-reset", time.Minute); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestLocker_ExpiredLockCanBeTaken(t *testing.T) {
	l := NewLocker()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	stale, err := l.Acquire(context.Background(), "k", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	now = now.Add(2 * time.Second)
	if _, err := l.Acquire(context.Background(), "k", time.Second); err != nil {
		t.Fatalf("expected expired lock to be taken, got %v", err)
	}

	// Liberar el lock vencido no debe soltar el del nuevo dueño.
	_ = stale(context.Background())
	if _, err := l.Acquire(context.Background(), "k", time.Second); !errors.Is(err, lock.ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}
}
