package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Toggle lee el interruptor de system_settings (fila id = 1) en cada llamada.
// Dentro de una transacción del Store lee con esa misma conexión.
type Toggle struct {
	db *sqlx.DB
}

type getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

func NewToggle(s *Store) *Toggle {
	return &Toggle{db: s.db}
}

func (t *Toggle) GamificationEnabled(ctx context.Context) (bool, error) {
	var q getter = t.db
	if tx, ok := txFromContext(ctx); ok {
		q = tx
	}

	var on bool
	err := q.GetContext(ctx, &on, `SELECT gamification_enabled FROM system_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		// Sin fila sembrada: mismo default que la migración.
		return true, nil
	}
	return on, err
}

func (t *Toggle) SetGamificationEnabled(ctx context.Context, enabled bool) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO system_settings (id, gamification_enabled, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
			SET gamification_enabled = EXCLUDED.gamification_enabled, updated_at = now()
	`, enabled)
	return err
}
