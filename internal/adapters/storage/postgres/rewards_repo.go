package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption-hub/internal/domain/rewards"

	"github.com/jmoiron/sqlx"
)

type RewardsRepo struct {
	db *sqlx.DB
}

func NewRewardsRepo(s *Store) *RewardsRepo {
	return &RewardsRepo{db: s.db}
}

func (r *RewardsRepo) GetUser(ctx context.Context, id string) (rewards.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rewards.User{}, rewards.ErrUserNotFound
		}
		return rewards.User{}, err
	}
	return row.toDomain(), nil
}

func (r *RewardsRepo) ListUserAchievements(ctx context.Context, userID string) ([]rewards.UserAchievement, error) {
	var rows []struct {
		UserID   string    `db:"user_id"`
		Code     string    `db:"achievement_code"`
		EarnedAt time.Time `db:"earned_at"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT user_id, achievement_code, earned_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at ASC, achievement_code ASC
	`, userID)
	if err != nil {
		return nil, err
	}

	out := make([]rewards.UserAchievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, rewards.UserAchievement{
			UserID:   row.UserID,
			Code:     rewards.AchievementCode(row.Code),
			EarnedAt: row.EarnedAt,
		})
	}
	return out, nil
}

func (r *RewardsRepo) ListAchievements(ctx context.Context) ([]rewards.Achievement, error) {
	var rows []achievementRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT code, name, description, bonus_points FROM achievements ORDER BY code ASC
	`); err != nil {
		return nil, err
	}

	out := make([]rewards.Achievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RewardsRepo) TopUsers(ctx context.Context, limit int) ([]rewards.RankingEntry, error) {
	var rows []struct {
		ID     string `db:"id"`
		Name   string `db:"name"`
		Points int64  `db:"points"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, points
		FROM users
		WHERE points > 0
		ORDER BY points DESC, created_at ASC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	out := make([]rewards.RankingEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rewards.RankingEntry{UserID: row.ID, Name: row.Name, Points: row.Points})
	}
	return out, nil
}

// ResetPoints es el reset periódico del ranking: un único UPDATE masivo.
func (r *RewardsRepo) ResetPoints(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET points = 0 WHERE points > 0`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
