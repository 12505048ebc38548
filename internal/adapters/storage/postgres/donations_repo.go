package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-hub/internal/domain/donations"

	"github.com/jmoiron/sqlx"
)

type DonationsRepo struct {
	db *sqlx.DB
}

func NewDonationsRepo(s *Store) *DonationsRepo {
	return &DonationsRepo{db: s.db}
}

func (r *DonationsRepo) GetByID(ctx context.Context, id string) (donations.Donation, error) {
	var row donationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+donationColumns+` FROM donations WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return donations.Donation{}, donations.ErrNotFound
		}
		return donations.Donation{}, err
	}
	return row.toDomain(), nil
}

func (r *DonationsRepo) ListByUser(ctx context.Context, userID string) ([]donations.Donation, error) {
	var rows []donationRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+donationColumns+` FROM donations
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, userID); err != nil {
		return nil, err
	}

	out := make([]donations.Donation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
