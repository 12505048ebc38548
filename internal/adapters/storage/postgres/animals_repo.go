package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption-hub/internal/domain/animals"

	"github.com/jmoiron/sqlx"
)

type AnimalsRepo struct {
	db *sqlx.DB
}

func NewAnimalsRepo(s *Store) *AnimalsRepo {
	return &AnimalsRepo{db: s.db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (id, name, species, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.ID,
		a.Name,
		string(a.Species),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	var row animalRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return row.toDomain(), nil
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	var rows []animalRow
	var err error
	if f.Status != "" {
		err = r.db.SelectContext(ctx, &rows, `
			SELECT `+animalColumns+` FROM animals WHERE status = $1 ORDER BY created_at ASC, id ASC
		`, string(f.Status))
	} else {
		err = r.db.SelectContext(ctx, &rows, `
			SELECT `+animalColumns+` FROM animals ORDER BY created_at ASC, id ASC
		`)
	}
	if err != nil {
		return nil, err
	}

	out := make([]animals.Animal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
