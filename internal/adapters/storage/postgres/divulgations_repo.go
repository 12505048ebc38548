package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-hub/internal/domain/divulgations"

	"github.com/jmoiron/sqlx"
)

type DivulgationsRepo struct {
	db *sqlx.DB
}

func NewDivulgationsRepo(s *Store) *DivulgationsRepo {
	return &DivulgationsRepo{db: s.db}
}

func (r *DivulgationsRepo) GetByID(ctx context.Context, id string) (divulgations.Divulgation, error) {
	var row divulgationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+divulgationColumns+` FROM divulgations WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return divulgations.Divulgation{}, divulgations.ErrNotFound
		}
		return divulgations.Divulgation{}, err
	}
	return row.toDomain(), nil
}

func (r *DivulgationsRepo) ListByUser(ctx context.Context, userID string) ([]divulgations.Divulgation, error) {
	return r.list(ctx, `
		SELECT `+divulgationColumns+` FROM divulgations WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

func (r *DivulgationsRepo) ListByStatus(ctx context.Context, status divulgations.Status) ([]divulgations.Divulgation, error) {
	return r.list(ctx, `
		SELECT `+divulgationColumns+` FROM divulgations WHERE status = $1 ORDER BY created_at DESC
	`, string(status))
}

func (r *DivulgationsRepo) list(ctx context.Context, query, arg string) ([]divulgations.Divulgation, error) {
	var rows []divulgationRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, err
	}
	out := make([]divulgations.Divulgation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
