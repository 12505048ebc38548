package jobs

import (
	"context"
	"errors"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/lock"
)

const rankingResetLockKey = "ranking-reset"

// RankingResetter es el reset de puntos que ejecuta el job.
type RankingResetter interface {
	ResetRanking(ctx context.Context) (int64, error)
}

// RankingReset pone en cero los puntos. Con un Locker configurado, solo una
// réplica lo ejecuta por disparo.
type RankingReset struct {
	svc     RankingResetter
	locker  lock.Locker
	log     logger.Logger
	timeout time.Duration
}

func NewRankingReset(svc RankingResetter, locker lock.Locker, log logger.Logger) *RankingReset {
	if log == nil {
		log = logger.NewNop()
	}
	return &RankingReset{
		svc:     svc,
		locker:  locker,
		log:     log.With(map[string]any{"job": "ranking_reset"}),
		timeout: 5 * time.Minute,
	}
}

// Run es lo que llama cron. Los errores se loguean: cron no tiene a quién devolverlos.
func (j *RankingReset) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil && !errors.Is(err, lock.ErrNotAcquired) {
		j.log.Error("ranking reset job failed", map[string]any{"error": err})
	}
}

// RunOnce devuelve lock.ErrNotAcquired si otra réplica ya lo está corriendo.
func (j *RankingReset) RunOnce(ctx context.Context) (int64, error) {
	if j.locker != nil {
		release, err := j.locker.Acquire(ctx, rankingResetLockKey, j.timeout)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				j.log.Info("ranking reset skipped: held by another instance", nil)
			}
			return 0, err
		}
		defer func() {
			if err := release(context.Background()); err != nil {
				j.log.Warn("ranking reset lock release failed", map[string]any{"error": err})
			}
		}()
	}

	return j.svc.ResetRanking(ctx)
}
