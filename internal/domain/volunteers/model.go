package volunteers

import "time"

// @Enum PENDING, APPROVED, REJECTED
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application es una candidatura de voluntariado.
type Application struct {
	ID     string
	UserID string

	Motivation string
	Status     Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
