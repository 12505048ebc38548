package donations

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de una donación. Solo CONFIRMED suma para recompensas.
// @Enum PENDING, CONFIRMED, REJECTED
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

type Donation struct {
	ID     string
	UserID string // vacío = anónima

	Amount decimal.Decimal // en reales
	Status Status
	// RewardedAt marca la primera confirmación. Con valor, volver a CONFIRMED no acredita nada.
	RewardedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
