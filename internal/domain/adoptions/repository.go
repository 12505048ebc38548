package adoptions

import (
	"context"
	"time"

	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/rewards"
)

// Tx es la vista transaccional del motor. Todo lo que se hace con un Tx se
// confirma o se descarta junto, premios incluidos.
//
// Orden de locks: primero el animal, después la solicitud.
type Tx interface {
	rewards.Store

	// LockAnimal devuelve animals.ErrNotFound si no existe.
	LockAnimal(ctx context.Context, id string) (animals.Animal, error)
	// CompareAndSetAnimalStatus cambia from -> to y reporta si alguna fila cambió.
	CompareAndSetAnimalStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) (bool, error)
	SetAnimalStatus(ctx context.Context, id string, to animals.Status, at time.Time) error

	// GetRequest y LockRequest devuelven ErrNotFound si no existe.
	GetRequest(ctx context.Context, id string) (Request, error)
	LockRequest(ctx context.Context, id string) (Request, error)
	InsertRequest(ctx context.Context, r Request) error
	UpdateRequestStatus(ctx context.Context, id string, status Status, completedAt *time.Time, at time.Time) error

	// RejectOpenRequests pasa a REJECTED toda solicitud abierta del animal salvo exceptID.
	RejectOpenRequests(ctx context.Context, animalID, exceptID string, at time.Time) ([]string, error)
	CountApprovedRequests(ctx context.Context, animalID, exceptID string) (int, error)
	HasOpenRequest(ctx context.Context, animalID, userID, exceptID string) (bool, error)
}

// Repository es el lado de lectura (fuera de transacción).
type Repository interface {
	GetByID(ctx context.Context, id string) (Request, error)
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Request, error)
}
