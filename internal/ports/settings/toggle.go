package settings

import "context"

// Toggle es el interruptor global de gamificación (una sola fila).
// Se relee en cada evaluación; no cachear.
type Toggle interface {
	GamificationEnabled(ctx context.Context) (bool, error)
}

// ToggleWriter lo implementan las fuentes que permiten cambiar el valor.
type ToggleWriter interface {
	SetGamificationEnabled(ctx context.Context, enabled bool) error
}
