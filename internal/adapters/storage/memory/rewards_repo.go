package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/rewards"
)

type rewardsRepo struct {
	s *Store
}

func NewRewardsRepo(s *Store) rewards.Repository {
	return &rewardsRepo{s: s}
}

func (r *rewardsRepo) GetUser(ctx context.Context, id string) (rewards.User, error) {
	var (
		u  rewards.User
		ok bool
	)
	r.s.read(func(st *state) {
		u, ok = st.users[id]
	})
	if !ok {
		return rewards.User{}, rewards.ErrUserNotFound
	}
	return u, nil
}

func (r *rewardsRepo) ListUserAchievements(ctx context.Context, userID string) ([]rewards.UserAchievement, error) {
	out := make([]rewards.UserAchievement, 0)
	r.s.read(func(st *state) {
		for _, ua := range st.earned[userID] {
			out = append(out, ua)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].EarnedAt.Equal(out[j].EarnedAt) {
			return out[i].Code < out[j].Code
		}
		return out[i].EarnedAt.Before(out[j].EarnedAt)
	})
	return out, nil
}

func (r *rewardsRepo) ListAchievements(ctx context.Context) ([]rewards.Achievement, error) {
	out := make([]rewards.Achievement, 0)
	r.s.read(func(st *state) {
		for _, a := range st.achievements {
			out = append(out, a)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// TopUsers: solo usuarios con puntos, desc; empate por alta más antigua.
func (r *rewardsRepo) TopUsers(ctx context.Context, limit int) ([]rewards.RankingEntry, error) {
	users := make([]rewards.User, 0)
	r.s.read(func(st *state) {
		for _, u := range st.users {
			if u.Points > 0 {
				users = append(users, u)
			}
		}
	})

	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	out := make([]rewards.RankingEntry, 0, len(users))
	for _, u := range users {
		out = append(out, rewards.RankingEntry{UserID: u.ID, Name: u.Name, Points: u.Points})
	}
	return out, nil
}

func (r *rewardsRepo) ResetPoints(ctx context.Context) (int64, error) {
	var n int64
	err := r.s.withTx(ctx, func(tx *txRepo) error {
		for id, u := range tx.st.users {
			if u.Points > 0 {
				u.Points = 0
				tx.st.users[id] = u
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
