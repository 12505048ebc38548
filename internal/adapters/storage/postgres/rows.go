package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"

	"github.com/shopspring/decimal"
)

const (
	animalColumns      = `id, name, species, status, created_at, updated_at`
	requestColumns     = `id, animal_id, user_id, status, answers, completed_at, created_at, updated_at`
	userColumns        = `id, name, points, last_login_reward_at, created_at`
	donationColumns    = `id, user_id, amount, status, rewarded_at, created_at, updated_at`
	applicationColumns = `id, user_id, motivation, status, created_at, updated_at`
	divulgationColumns = `id, user_id, title, description, status, created_at, updated_at`
)

type animalRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Species   string    `db:"species"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r animalRow) toDomain() animals.Animal {
	return animals.Animal{
		ID:        r.ID,
		Name:      r.Name,
		Species:   animals.Species(r.Species),
		Status:    animals.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type requestRow struct {
	ID          string       `db:"id"`
	AnimalID    string       `db:"animal_id"`
	UserID      string       `db:"user_id"`
	Status      string       `db:"status"`
	Answers     []byte       `db:"answers"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (r requestRow) toDomain() (adoptions.Request, error) {
	q := adoptions.Request{
		ID:          r.ID,
		AnimalID:    r.AnimalID,
		UserID:      r.UserID,
		Status:      adoptions.Status(r.Status),
		CompletedAt: fromNullTime(r.CompletedAt),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.Answers) > 0 {
		if err := json.Unmarshal(r.Answers, &q.Answers); err != nil {
			return adoptions.Request{}, err
		}
	}
	return q, nil
}

type userRow struct {
	ID                string       `db:"id"`
	Name              string       `db:"name"`
	Points            int64        `db:"points"`
	LastLoginRewardAt sql.NullTime `db:"last_login_reward_at"`
	CreatedAt         time.Time    `db:"created_at"`
}

func (r userRow) toDomain() rewards.User {
	return rewards.User{
		ID:                r.ID,
		Name:              r.Name,
		Points:            r.Points,
		LastLoginRewardAt: fromNullTime(r.LastLoginRewardAt),
		CreatedAt:         r.CreatedAt,
	}
}

type achievementRow struct {
	Code        string `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	BonusPoints int64  `db:"bonus_points"`
}

func (r achievementRow) toDomain() rewards.Achievement {
	return rewards.Achievement{
		Code:        rewards.AchievementCode(r.Code),
		Name:        r.Name,
		Description: r.Description,
		BonusPoints: r.BonusPoints,
	}
}

type donationRow struct {
	ID         string          `db:"id"`
	UserID     sql.NullString  `db:"user_id"`
	Amount     decimal.Decimal `db:"amount"`
	Status     string          `db:"status"`
	RewardedAt sql.NullTime    `db:"rewarded_at"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (r donationRow) toDomain() donations.Donation {
	return donations.Donation{
		ID:         r.ID,
		UserID:     r.UserID.String,
		Amount:     r.Amount,
		Status:     donations.Status(r.Status),
		RewardedAt: fromNullTime(r.RewardedAt),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type applicationRow struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Motivation string    `db:"motivation"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r applicationRow) toDomain() volunteers.Application {
	return volunteers.Application{
		ID:         r.ID,
		UserID:     r.UserID,
		Motivation: r.Motivation,
		Status:     volunteers.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type divulgationRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r divulgationRow) toDomain() divulgations.Divulgation {
	return divulgations.Divulgation{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      divulgations.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
