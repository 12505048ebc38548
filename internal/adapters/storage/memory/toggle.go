package memory

import (
	"context"
	"sync/atomic"
)

// Toggle es el interruptor de gamificación en memoria. Se lee en cada evaluación.
type Toggle struct {
	on atomic.Bool
}

func NewToggle(enabled bool) *Toggle {
	t := &Toggle{}
	t.on.Store(enabled)
	return t
}

func (t *Toggle) GamificationEnabled(ctx context.Context) (bool, error) {
	return t.on.Load(), nil
}

func (t *Toggle) SetGamificationEnabled(ctx context.Context, enabled bool) error {
	t.on.Store(enabled)
	return nil
}
