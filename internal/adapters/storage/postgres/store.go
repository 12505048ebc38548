package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"
	"pet-adoption-hub/internal/platform/txn"

	"github.com/jmoiron/sqlx"
)

// Store agrupa el pool y abre las transacciones de los servicios.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "pgx")}
}

// txKey guarda la *sqlx.Tx abierta en el contexto del callback.
type txKey struct{}

// txFromContext devuelve la transacción en curso, si la hay.
func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok && tx != nil
}

// withTx corre fn en READ COMMITTED. La exclusión entre aprobaciones la dan
// los SELECT ... FOR UPDATE y el UPDATE condicional del animal, no el nivel de aislamiento.
// El ctx que recibe fn lleva la tx: las lecturas auxiliares (toggle) no piden otra conexión al pool.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx *txRepo) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey{}, tx), &txRepo{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

type manager[T any] struct {
	s    *Store
	view func(tx *txRepo) T
}

func (m manager[T]) WithinTx(ctx context.Context, fn func(ctx context.Context, tx T) error) error {
	return m.s.withTx(ctx, func(ctx context.Context, tx *txRepo) error {
		return fn(ctx, m.view(tx))
	})
}

func AdoptionsTx(s *Store) txn.Manager[adoptions.Tx] {
	return manager[adoptions.Tx]{s: s, view: func(tx *txRepo) adoptions.Tx { return tx }}
}

func RewardsTx(s *Store) txn.Manager[rewards.Store] {
	return manager[rewards.Store]{s: s, view: func(tx *txRepo) rewards.Store { return tx }}
}

func DonationsTx(s *Store) txn.Manager[donations.Tx] {
	return manager[donations.Tx]{s: s, view: func(tx *txRepo) donations.Tx { return tx }}
}

func VolunteersTx(s *Store) txn.Manager[volunteers.Tx] {
	return manager[volunteers.Tx]{s: s, view: func(tx *txRepo) volunteers.Tx { return tx }}
}

func DivulgationsTx(s *Store) txn.Manager[divulgations.Tx] {
	return manager[divulgations.Tx]{s: s, view: func(tx *txRepo) divulgations.Tx { return tx }}
}
