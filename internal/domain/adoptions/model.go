package adoptions

import "time"

// Status del ciclo de vida de una solicitud de adopción.
// @Enum REQUESTED, UNDER_REVIEW, APPROVED, REJECTED
type Status string

const (
	StatusRequested   Status = "REQUESTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Open: REQUESTED o UNDER_REVIEW. APPROVED/REJECTED son terminales pero se pueden reabrir.
func (s Status) Open() bool {
	return s == StatusRequested || s == StatusUnderReview
}

// Request es la solicitud de un usuario para adoptar un animal.
type Request struct {
	ID       string
	AnimalID string
	UserID   string

	Status  Status
	Answers map[string]string // cuestionario

	// CompletedAt se setea al entrar en APPROVED/REJECTED y se limpia en cualquier otro estado.
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
