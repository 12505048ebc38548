package animals

import "time"

// Status es la disponibilidad del animal.
// @Enum AVAILABLE, ADOPTION_IN_PROGRESS, ADOPTED
type Status string

const (
	StatusAvailable          Status = "AVAILABLE"
	StatusAdoptionInProgress Status = "ADOPTION_IN_PROGRESS"
	StatusAdopted            Status = "ADOPTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusAdoptionInProgress, StatusAdopted:
		return true
	}
	return false
}

// Species es texto libre (perro, gato, ...). No se valida contra un catálogo.
type Species string

// Animal es un animal del refugio. El estado solo lo cambia el motor de adopciones.
type Animal struct {
	ID string

	Name    string
	Species Species
	Status  Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
