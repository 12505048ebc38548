package volunteers

import (
	"context"
	"time"

	"pet-adoption-hub/internal/domain/rewards"
)

type Tx interface {
	rewards.Store

	InsertApplication(ctx context.Context, a Application) error
	LockApplication(ctx context.Context, id string) (Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status Status, at time.Time) error
}

type Repository interface {
	GetByID(ctx context.Context, id string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
}
