package donations

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
	"github.com/shopspring/decimal"
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
		log:    log.With(map[string]any{"component": "donations"}),
		now:    time.Now,
	}
}

type CreateInput struct {
	UserID   string // opcional
	UserName string
	Amount   decimal.Decimal
}

// Create registra una donación PENDING. La confirmación llega después (pasarela o staff).
func (s *Service) Create(ctx context.Context, in CreateInput) (Donation, error) {
	if !in.Amount.IsPositive() {
		return Donation{}, ErrInvalidInput
	}
	userID := strings.TrimSpace(in.UserID)

	now := s.now().UTC()
	d := Donation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    in.Amount.Round(2),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if userID != "" {
			if err := tx.EnsureUser(ctx, userID, strings.TrimSpace(in.UserName)); err != nil {
				return err
			}
		}
		return tx.InsertDonation(ctx, d)
	})
	if err != nil {
		return Donation{}, err
	}
	return d, nil
}

type Result struct {
	Donation Donation
	From     Status
	Rewards  rewards.Outcome
	Noop     bool
}

// SetStatus cambia el estado. La primera entrada en CONFIRMED acredita recompensas
// en la misma transacción; salir de CONFIRMED no descuenta puntos y volver a
// entrar no acredita de nuevo.
func (s *Service) SetStatus(ctx context.Context, id string, to Status) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" || !to.Valid() {
		return Result{}, ErrInvalidInput
	}

	var res Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		d, err := tx.LockDonation(ctx, id)
		if err != nil {
			return err
		}
		res = Result{Donation: d, From: d.Status}
		if d.Status == to {
			res.Noop = true
			return nil
		}

		now := s.now().UTC()
		if err := tx.UpdateDonationStatus(ctx, d.ID, to, now); err != nil {
			return err
		}
		res.Donation.Status = to
		res.Donation.UpdatedAt = now

		if to != StatusConfirmed || d.RewardedAt != nil {
			return nil
		}
		if err := tx.MarkDonationRewarded(ctx, d.ID, now); err != nil {
			return err
		}
		res.Donation.RewardedAt = &now

		if d.UserID != "" {
			out, err := s.ledger.OnDonationConfirmed(ctx, tx, d.UserID, d.Amount)
			if err != nil {
				return err
			}
			res.Rewards = out
		}
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
	d := res.Donation
	err := s.pub.Publish(ctx, notify.KeyDonationStatusChanged, notify.Event{
		ID:         uuid.NewString(),
		Type:       notify.KeyDonationStatusChanged,
		OccurredAt: d.UpdatedAt,
		Payload: map[string]any{
			"donation_id": d.ID,
			"user_id":     d.UserID,
			"amount":      d.Amount.StringFixed(2),
			"from":        string(res.From),
			"to":          string(d.Status),
		},
	})
	if err != nil {
		s.log.Warn("publish donation status failed", map[string]any{"donation_id": d.ID, "error": err})
	}

	if d.Status == StatusConfirmed && d.UserID != "" {
		rewards.PublishOutcome(ctx, s.pub, s.log, "donation_confirmed", d.UserID, res.Rewards, d.UpdatedAt)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Donation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Donation{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Donation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}
