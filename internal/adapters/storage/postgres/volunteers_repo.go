package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-hub/internal/domain/volunteers"

	"github.com/jmoiron/sqlx"
)

type VolunteersRepo struct {
	db *sqlx.DB
}

func NewVolunteersRepo(s *Store) *VolunteersRepo {
	return &VolunteersRepo{db: s.db}
}

func (r *VolunteersRepo) GetByID(ctx context.Context, id string) (volunteers.Application, error) {
	var row applicationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+applicationColumns+` FROM volunteer_applications WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return volunteers.Application{}, volunteers.ErrNotFound
		}
		return volunteers.Application{}, err
	}
	return row.toDomain(), nil
}

func (r *VolunteersRepo) ListByUser(ctx context.Context, userID string) ([]volunteers.Application, error) {
	var rows []applicationRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+applicationColumns+` FROM volunteer_applications
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID); err != nil {
		return nil, err
	}

	out := make([]volunteers.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
