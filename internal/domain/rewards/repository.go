package rewards

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAchievementNotFound = errors.New("achievement not found")
)

// Store es la vista transaccional que necesita el ledger.
// Todas las llamadas ocurren dentro de la transacción del flujo que dispara el premio.
type Store interface {
	// EnsureUser crea el usuario si no existe (los usuarios nacen en el auth externo).
	EnsureUser(ctx context.Context, id, name string) error
	GetUser(ctx context.Context, id string) (User, error)
	// LockUser lee el usuario con lock de fila.
	LockUser(ctx context.Context, id string) (User, error)
	IncrementPoints(ctx context.Context, userID string, amount int64) error
	SetLastLoginReward(ctx context.Context, userID string, at time.Time) error
	InsertLoginRecord(ctx context.Context, rec LoginRecord) error

	GetAchievement(ctx context.Context, code AchievementCode) (Achievement, error)
	HasUserAchievement(ctx context.Context, userID string, code AchievementCode) (bool, error)
	// InsertUserAchievement devuelve false si el par ya existía (carrera con otra tx).
	InsertUserAchievement(ctx context.Context, ua UserAchievement) (bool, error)

	// Agregados autoritativos, leídos al momento de evaluar.
	CountConfirmedDonations(ctx context.Context, userID string) (int, error)
	SumConfirmedDonations(ctx context.Context, userID string) (decimal.Decimal, error)
	CountApprovedAdoptions(ctx context.Context, userID string) (int, error)
}

// Repository es el lado de lectura (fuera de transacción) + el reset masivo.
type Repository interface {
	GetUser(ctx context.Context, id string) (User, error)
	ListUserAchievements(ctx context.Context, userID string) ([]UserAchievement, error)
	ListAchievements(ctx context.Context) ([]Achievement, error)
	TopUsers(ctx context.Context, limit int) ([]RankingEntry, error)
	// ResetPoints hace UPDATE users SET points = 0 WHERE points > 0.
	ResetPoints(ctx context.Context) (int64, error)
}
