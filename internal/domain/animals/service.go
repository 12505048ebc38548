package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	Status  string // opcional, default AVAILABLE
}

// Create da de alta un animal. Nunca nace ADOPTED: eso solo lo decide una aprobación.
func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return Animal{}, ErrInvalidInput
	}

	status := StatusAvailable
	if v := strings.TrimSpace(in.Status); v != "" {
		status = Status(strings.ToUpper(v))
	}
	if status != StatusAvailable && status != StatusAdoptionInProgress {
		return Animal{}, ErrInvalidInput
	}

	now := s.now().UTC()
	a := Animal{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   Species(strings.ToLower(species)),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]Animal, error) {
	f := Filter{}
	if v := strings.TrimSpace(status); v != "" {
		f.Status = Status(strings.ToUpper(v))
		if !f.Status.Valid() {
			return nil, ErrInvalidInput
		}
	}
	return s.repo.List(ctx, f)
}
