package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/volunteers"
)

type applicationRepo struct {
	s *Store
}

func NewVolunteersRepo(s *Store) volunteers.Repository {
	return &applicationRepo{s: s}
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (volunteers.Application, error) {
	var (
		a  volunteers.Application
		ok bool
	)
	r.s.read(func(st *state) {
		a, ok = st.applications[id]
	})
	if !ok {
		return volunteers.Application{}, volunteers.ErrNotFound
	}
	return a, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]volunteers.Application, error) {
	out := make([]volunteers.Application, 0)
	r.s.read(func(st *state) {
		for _, a := range st.applications {
			if a.UserID == userID {
				out = append(out, a)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
