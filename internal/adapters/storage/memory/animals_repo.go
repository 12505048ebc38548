package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption-hub/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func NewAnimalsRepo(s *Store) animals.Repository {
	return &animalRepo{s: s}
}

// Create no compite con el motor: toma el mismo lock que las transacciones.
func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	if strings.TrimSpace(a.ID) == "" {
		return errIDRequired
	}
	return r.s.withTx(ctx, func(tx *txRepo) error {
		if _, exists := tx.st.animals[a.ID]; exists {
			return errAlreadyExists
		}
		tx.st.animals[a.ID] = a
		return nil
	})
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var (
		a  animals.Animal
		ok bool
	)
	r.s.read(func(st *state) {
		a, ok = st.animals[id]
	})
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	r.s.read(func(st *state) {
		for _, a := range st.animals {
			if f.Status != "" && a.Status != f.Status {
				continue
			}
			out = append(out, a)
		}
	})

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
