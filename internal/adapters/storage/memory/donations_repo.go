package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/donations"
)

type donationRepo struct {
	s *Store
}

func NewDonationsRepo(s *Store) donations.Repository {
	return &donationRepo{s: s}
}

func (r *donationRepo) GetByID(ctx context.Context, id string) (donations.Donation, error) {
	var (
		d  donations.Donation
		ok bool
	)
	r.s.read(func(st *state) {
		d, ok = st.donations[id]
	})
	if !ok {
		return donations.Donation{}, donations.ErrNotFound
	}
	return d, nil
}

func (r *donationRepo) ListByUser(ctx context.Context, userID string) ([]donations.Donation, error) {
	out := make([]donations.Donation, 0)
	r.s.read(func(st *state) {
		for _, d := range st.donations {
			if d.UserID == userID {
				out = append(out, d)
			}
		}
	})

	// Más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
