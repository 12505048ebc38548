package divulgations

import (
	"context"
	"time"

	"pet-adoption-hub/internal/domain/rewards"
)

type Tx interface {
	rewards.Store

	InsertDivulgation(ctx context.Context, d Divulgation) error
	LockDivulgation(ctx context.Context, id string) (Divulgation, error)
	UpdateDivulgationStatus(ctx context.Context, id string, status Status, at time.Time) error
}

type Repository interface {
	GetByID(ctx context.Context, id string) (Divulgation, error)
	ListByUser(ctx context.Context, userID string) ([]Divulgation, error)
	ListByStatus(ctx context.Context, status Status) ([]Divulgation, error)
}
