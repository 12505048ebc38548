package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/divulgations"
)

type divulgationRepo struct {
	s *Store
}

func NewDivulgationsRepo(s *Store) divulgations.Repository {
	return &divulgationRepo{s: s}
}

func (r *divulgationRepo) GetByID(ctx context.Context, id string) (divulgations.Divulgation, error) {
	var (
		d  divulgations.Divulgation
		ok bool
	)
	r.s.read(func(st *state) {
		d, ok = st.divulgations[id]
	})
	if !ok {
		return divulgations.Divulgation{}, divulgations.ErrNotFound
	}
	return d, nil
}

func (r *divulgationRepo) ListByUser(ctx context.Context, userID string) ([]divulgations.Divulgation, error) {
	return r.list(func(d divulgations.Divulgation) bool { return d.UserID == userID }), nil
}

func (r *divulgationRepo) ListByStatus(ctx context.Context, status divulgations.Status) ([]divulgations.Divulgation, error) {
	return r.list(func(d divulgations.Divulgation) bool { return d.Status == status }), nil
}

func (r *divulgationRepo) list(match func(divulgations.Divulgation) bool) []divulgations.Divulgation {
	out := make([]divulgations.Divulgation, 0)
	r.s.read(func(st *state) {
		for _, d := range st.divulgations {
			if match(d) {
				out = append(out, d)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
