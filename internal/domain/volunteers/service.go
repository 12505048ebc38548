package volunteers

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/txn"
	"pet-adoption-hub/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
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
		log:    log.With(map[string]any{"component": "volunteers"}),
		now:    time.Now,
	}
}

func (s *Service) Apply(ctx context.Context, userID, userName, motivation string) (Application, error) {
	userID = strings.TrimSpace(userID)
	motivation = strings.TrimSpace(motivation)
	if userID == "" || motivation == "" {
		return Application{}, ErrInvalidInput
	}

	now := s.now().UTC()
	a := Application{
		ID:         uuid.NewString(),
		UserID:     userID,
		Motivation: motivation,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.EnsureUser(ctx, userID, strings.TrimSpace(userName)); err != nil {
			return err
		}
		return tx.InsertApplication(ctx, a)
	})
	if err != nil {
		return Application{}, err
	}
	return a, nil
}

type Result struct {
	Application Application
	From        Status
	Rewards     rewards.Outcome
	Noop        bool
}

// SetStatus aplica la decisión. APPROVED siempre evalúa volunteer_heart (el
// ledger ya es idempotente), también cuando la candidatura ya estaba aprobada.
func (s *Service) SetStatus(ctx context.Context, id string, to Status) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" || !to.Valid() {
		return Result{}, ErrInvalidInput
	}

	var res Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		a, err := tx.LockApplication(ctx, id)
		if err != nil {
			return err
		}
		res = Result{Application: a, From: a.Status}

		if a.Status != to {
			now := s.now().UTC()
			if err := tx.UpdateApplicationStatus(ctx, a.ID, to, now); err != nil {
				return err
			}
			res.Application.Status = to
			res.Application.UpdatedAt = now
		}

		if to == StatusApproved {
			out, err := s.ledger.OnVolunteerApproved(ctx, tx, a.UserID)
			if err != nil {
				return err
			}
			res.Rewards = out
		}

		res.Noop = res.From == to && res.Rewards.Empty()
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if !res.Noop {
		s.afterCommit(ctx, res)
	}
	return res, nil
}

func (s *Service) afterCommit(ctx context.Context, res Result) {
	a := res.Application
	if res.From != a.Status {
		err := s.pub.Publish(ctx, notify.KeyVolunteerStatusChanged, notify.Event{
			ID:         uuid.NewString(),
			Type:       notify.KeyVolunteerStatusChanged,
			OccurredAt: a.UpdatedAt,
			Payload: map[string]any{
				"application_id": a.ID,
				"user_id":        a.UserID,
				"from":           string(res.From),
				"to":             string(a.Status),
			},
		})
		if err != nil {
			s.log.Warn("publish volunteer status failed", map[string]any{"application_id": a.ID, "error": err})
		}
	}

	if !res.Rewards.Empty() {
		rewards.PublishOutcome(ctx, s.pub, s.log, "volunteer_approved", a.UserID, res.Rewards, s.now().UTC())
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}
