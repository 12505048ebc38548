package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/metrics"
	"pet-adoption-hub/internal/platform/txn"
	"pet-adoption-hub/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	// ErrInconsistent: una solicitud apunta a un animal que no existe. Es corrupción de datos.
	ErrInconsistent = errors.New("inconsistent data")
)

type Service struct {
	tx     txn.Manager[Tx]
	repo   Repository
	ledger *rewards.Ledger
	pub    notify.Publisher
	log    logger.Logger
	now    func() time.Time
}

func NewService(tx txn.Manager[Tx], repo Repository, ledger *rewards.Ledger, pub notify.Publisher, log logger.Logger) *Service {
	if pub == nil {
		pub = notify.Nop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		tx:     tx,
		repo:   repo,
		ledger: ledger,
		pub:    pub,
		log:    log.With(map[string]any{"component": "adoptions"}),
		now:    time.Now,
	}
}

// Decision es el resultado de SetStatus, ya confirmado.
type Decision struct {
	Request Request
	Animal  animals.Animal

	From Status
	// AutoRejected son las solicitudes competidoras que se rechazaron con esta aprobación.
	AutoRejected []string
	Rewards      rewards.Outcome

	// Noop: el pedido no cambió nada (reintento).
	Noop bool
}

type CreateInput struct {
	AnimalID string
	UserID   string
	UserName string
	Answers  map[string]string
}

// CreateRequest abre una solicitud REQUESTED. Falla con ErrConflict si el animal
// ya fue adoptado o si el usuario ya tiene una solicitud abierta para él.
func (s *Service) CreateRequest(ctx context.Context, in CreateInput) (Request, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	userID := strings.TrimSpace(in.UserID)
	if animalID == "" || userID == "" {
		return Request{}, ErrInvalidInput
	}

	answers := make(map[string]string, len(in.Answers))
	for k, v := range in.Answers {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		answers[k] = strings.TrimSpace(v)
	}

	var out Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.EnsureUser(ctx, userID, strings.TrimSpace(in.UserName)); err != nil {
			return err
		}

		a, err := tx.LockAnimal(ctx, animalID)
		if err != nil {
			if errors.Is(err, animals.ErrNotFound) {
				return fmt.Errorf("%w: animal %s", ErrNotFound, animalID)
			}
			return err
		}
		if a.Status == animals.StatusAdopted {
			return fmt.Errorf("%w: animal already adopted", ErrConflict)
		}

		open, err := tx.HasOpenRequest(ctx, animalID, userID, "")
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: user already has an open request for this animal", ErrConflict)
		}

		now := s.now().UTC()
		out = Request{
			ID:        uuid.NewString(),
			AnimalID:  animalID,
			UserID:    userID,
			Status:    StatusRequested,
			Answers:   answers,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.InsertRequest(ctx, out)
	})
	if err != nil {
		return Request{}, err
	}
	return out, nil
}

// SetStatus es el único punto que mueve solicitudes y, con ellas, el estado del animal.
//
// Todo corre en una transacción: animal y solicitud se bloquean (en ese orden),
// se aplica la transición, se rechazan las competidoras cuando corresponde y se
// invoca al ledger. Cualquier error deshace todo.
func (s *Service) SetStatus(ctx context.Context, requestID string, to Status) (Decision, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" || !to.Valid() {
		return Decision{}, ErrInvalidInput
	}

	var d Decision
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		d, err = s.reconcile(ctx, tx, requestID, to)
		return err
	})

	metrics.RecordAdoptionTransition(string(to), resultLabel(d, err), len(d.AutoRejected))
	if err != nil {
		if errors.Is(err, ErrInconsistent) {
			s.log.Error("adoption request references missing animal", map[string]any{"request_id": requestID, "error": err})
		}
		return Decision{}, err
	}

	if !d.Noop {
		s.afterCommit(ctx, d)
	}
	return d, nil
}

func (s *Service) reconcile(ctx context.Context, tx Tx, requestID string, to Status) (Decision, error) {
	// Lectura sin lock solo para saber qué animal bloquear primero.
	probe, err := tx.GetRequest(ctx, requestID)
	if err != nil {
		return Decision{}, err
	}

	animal, err := tx.LockAnimal(ctx, probe.AnimalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return Decision{}, fmt.Errorf("%w: request %s references animal %s", ErrInconsistent, requestID, probe.AnimalID)
		}
		return Decision{}, err
	}

	req, err := tx.LockRequest(ctx, requestID)
	if err != nil {
		return Decision{}, err
	}
	if req.AnimalID != animal.ID {
		return Decision{}, fmt.Errorf("%w: request %s moved between animals", ErrInconsistent, requestID)
	}

	from := req.Status
	d := Decision{Request: req, Animal: animal, From: from}
	now := s.now().UTC()

	if to == StatusApproved {
		switch animal.Status {
		case animals.StatusAdopted:
			if from == StatusApproved {
				d.Noop = true
				return d, nil
			}
			return Decision{}, fmt.Errorf("%w: animal already adopted by another request", ErrConflict)

		case animals.StatusAvailable:
			swapped, err := tx.CompareAndSetAnimalStatus(ctx, animal.ID, animals.StatusAvailable, animals.StatusAdopted, now)
			if err != nil {
				return Decision{}, err
			}
			if !swapped {
				return Decision{}, fmt.Errorf("%w: animal is no longer available", ErrConflict)
			}
			d.Animal.Status = animals.StatusAdopted
			d.Animal.UpdatedAt = now

			rejected, err := tx.RejectOpenRequests(ctx, animal.ID, req.ID, now)
			if err != nil {
				return Decision{}, err
			}
			d.AutoRejected = rejected

			completedAt := req.CompletedAt
			if from != StatusApproved || completedAt == nil {
				completedAt = &now
			}
			if err := tx.UpdateRequestStatus(ctx, req.ID, StatusApproved, completedAt, now); err != nil {
				return Decision{}, err
			}
			d.Request.Status = StatusApproved
			d.Request.CompletedAt = completedAt
			d.Request.UpdatedAt = now

			// Reparación (solicitud ya APPROVED con animal AVAILABLE): sin premio.
			if from != StatusApproved {
				out, err := s.ledger.OnAdoptionApproved(ctx, tx, req.UserID)
				if err != nil {
					return Decision{}, err
				}
				d.Rewards = out
			}
			return d, nil

		default:
			return Decision{}, fmt.Errorf("%w: animal is %s", ErrConflict, animal.Status)
		}
	}

	if from == to {
		d.Noop = true
		return d, nil
	}

	// Reabrir no puede dejar al usuario con dos solicitudes abiertas para el mismo animal.
	if to.Open() && !from.Open() {
		open, err := tx.HasOpenRequest(ctx, animal.ID, req.UserID, req.ID)
		if err != nil {
			return Decision{}, err
		}
		if open {
			return Decision{}, fmt.Errorf("%w: user already has an open request for this animal", ErrConflict)
		}
	}

	if from == StatusApproved && animal.Status == animals.StatusAdopted {
		others, err := tx.CountApprovedRequests(ctx, animal.ID, req.ID)
		if err != nil {
			return Decision{}, err
		}
		if others == 0 {
			if err := tx.SetAnimalStatus(ctx, animal.ID, animals.StatusAvailable, now); err != nil {
				return Decision{}, err
			}
			d.Animal.Status = animals.StatusAvailable
			d.Animal.UpdatedAt = now
		}
	}

	var completedAt *time.Time
	if to == StatusRejected {
		completedAt = &now
	}
	if err := tx.UpdateRequestStatus(ctx, req.ID, to, completedAt, now); err != nil {
		return Decision{}, err
	}
	d.Request.Status = to
	d.Request.CompletedAt = completedAt
	d.Request.UpdatedAt = now
	return d, nil
}

func (s *Service) afterCommit(ctx context.Context, d Decision) {
	at := d.Request.UpdatedAt
	err := s.pub.Publish(ctx, notify.KeyAdoptionStatusChanged, notify.Event{
		ID:         uuid.NewString(),
		Type:       notify.KeyAdoptionStatusChanged,
		OccurredAt: at,
		Payload: map[string]any{
			"request_id":    d.Request.ID,
			"animal_id":     d.Animal.ID,
			"user_id":       d.Request.UserID,
			"from":          string(d.From),
			"to":            string(d.Request.Status),
			"animal_status": string(d.Animal.Status),
			"auto_rejected": d.AutoRejected,
		},
	})
	if err != nil {
		s.log.Warn("publish adoption status failed", map[string]any{"request_id": d.Request.ID, "error": err})
	}

	if !d.Rewards.Empty() {
		rewards.PublishOutcome(ctx, s.pub, s.log, "adoption_approved", d.Request.UserID, d.Rewards, at)
	}

	s.log.Info("adoption request status changed", map[string]any{
		"request_id":    d.Request.ID,
		"animal_id":     d.Animal.ID,
		"from":          string(d.From),
		"to":            string(d.Request.Status),
		"auto_rejected": len(d.AutoRejected),
	})
}

func resultLabel(d Decision, err error) string {
	switch {
	case err == nil && d.Noop:
		return "noop"
	case err == nil:
		return "applied"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Request, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}
