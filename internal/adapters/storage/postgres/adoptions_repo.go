package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-hub/internal/domain/adoptions"

	"github.com/jmoiron/sqlx"
)

type AdoptionsRepo struct {
	db *sqlx.DB
}

func NewAdoptionsRepo(s *Store) *AdoptionsRepo {
	return &AdoptionsRepo{db: s.db}
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	var row requestRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return row.toDomain()
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM adoption_requests
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
}

func (r *AdoptionsRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM adoption_requests
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
}

func (r *AdoptionsRepo) list(ctx context.Context, query string, arg string) ([]adoptions.Request, error) {
	var rows []requestRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, err
	}

	out := make([]adoptions.Request, 0, len(rows))
	for _, row := range rows {
		q, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
