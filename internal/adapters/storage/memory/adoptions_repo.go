package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/adoptions"
)

type requestRepo struct {
	s *Store
}

func NewAdoptionsRepo(s *Store) adoptions.Repository {
	return &requestRepo{s: s}
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	var (
		q  adoptions.Request
		ok bool
	)
	r.s.read(func(st *state) {
		q, ok = st.requests[id]
		q.Answers = copyAnswers(q.Answers)
	})
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return q, nil
}

func (r *requestRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.list(func(q adoptions.Request) bool { return q.UserID == userID }), nil
}

func (r *requestRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Request, error) {
	return r.list(func(q adoptions.Request) bool { return q.AnimalID == animalID }), nil
}

func (r *requestRepo) list(match func(adoptions.Request) bool) []adoptions.Request {
	out := make([]adoptions.Request, 0)
	r.s.read(func(st *state) {
		for _, q := range st.requests {
			if match(q) {
				q.Answers = copyAnswers(q.Answers)
				out = append(out, q)
			}
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
