package donations

import (
	"context"
	"time"

	"pet-adoption-hub/internal/domain/rewards"
)

type Tx interface {
	rewards.Store

	InsertDonation(ctx context.Context, d Donation) error
	// LockDonation devuelve ErrNotFound si no existe.
	LockDonation(ctx context.Context, id string) (Donation, error)
	UpdateDonationStatus(ctx context.Context, id string, status Status, at time.Time) error
	MarkDonationRewarded(ctx context.Context, id string, at time.Time) error
}

type Repository interface {
	GetByID(ctx context.Context, id string) (Donation, error)
	ListByUser(ctx context.Context, userID string) ([]Donation, error)
}
