package divulgations

import "time"

// @Enum PENDING, REVIEWED, REJECTED
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusReviewed Status = "REVIEWED" // revisada y publicada
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusRejected:
		return true
	}
	return false
}

// Divulgation es un aviso de la comunidad (animal perdido, en adopción por terceros, etc).
type Divulgation struct {
	ID     string
	UserID string

	Title       string
	Description string
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
