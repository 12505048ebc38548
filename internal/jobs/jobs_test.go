package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption-hub/internal/adapters/lock/local"
	"pet-adoption-hub/internal/ports/lock"
)

type fakeResetter struct {
	calls atomic.Int32
	block chan struct{}
	err   error
}

func (f *fakeResetter) ResetRanking(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return 3, f.err
}

func TestRankingReset_RunOnce(t *testing.T) {
	r := &fakeResetter{}
	j := NewRankingReset(r, local.NewLocker(), nil)

	n, err := j.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 || r.calls.Load() != 1 {
		t.Fatalf("expected 3 users reset in one call, got n=%d calls=%d", n, r.calls.Load())
	}

	// El lock se libera al terminar: un segundo disparo vuelve a correr.
	if _, err := j.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if r.calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", r.calls.Load())
	}
}

func TestRankingReset_NeverOverlaps(t *testing.T) {
	r := &fakeResetter{block: make(chan struct{})}
	locker := local.NewLocker()
	a := NewRankingReset(r, locker, nil)
	b := NewRankingReset(r, locker, nil)

	done := make(chan error, 1)
	go func() {
		_, err := a.RunOnce(context.Background())
		done <- err
	}()

	// Esperar a que la primera ejecución tenga el lock.
	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first run never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := b.RunOnce(context.Background()); !errors.Is(err, lock.ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired while another reset runs, got %v", err)
	}

	close(r.block)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if r.calls.Load() != 1 {
		t.Fatalf("expected exactly one reset, got %d", r.calls.Load())
	}
}

func TestRankingReset_WithoutLocker(t *testing.T) {
	r := &fakeResetter{err: errors.New("db down")}
	j := NewRankingReset(r, nil, nil)

	if _, err := j.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error to propagate")
	}
	// Run solo loguea.
	j.Run()
	if r.calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", r.calls.Load())
	}
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(nil)
	if err := s.Add("ranking_reset", "not a cron", NewRankingReset(&fakeResetter{}, nil, nil)); err == nil {
		t.Fatalf("expected invalid spec error")
	}
	if err := s.Add("ranking_reset", "0 0 1 * *", NewRankingReset(&fakeResetter{}, nil, nil)); err != nil {
		t.Fatalf("valid spec: %v", err)
	}

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
