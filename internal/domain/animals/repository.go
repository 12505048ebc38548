package animals

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("animal not found")

// Filter para listados. Status vacío = todos.
type Filter struct {
	Status Status
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
}
