package divulgations

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

const maxTitleLen = 200

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
		log:    log.With(map[string]any{"component": "divulgations"}),
		now:    time.Now,
	}
}

type SubmitInput struct {
	UserID      string
	UserName    string
	Title       string
	Description string
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (Divulgation, error) {
	userID := strings.TrimSpace(in.UserID)
	title := strings.TrimSpace(in.Title)
	if userID == "" || title == "" || len(title) > maxTitleLen {
		return Divulgation{}, ErrInvalidInput
	}

	now := s.now().UTC()
	d := Divulgation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.EnsureUser(ctx, userID, strings.TrimSpace(in.UserName)); err != nil {
			return err
		}
		return tx.InsertDivulgation(ctx, d)
	})
	if err != nil {
		return Divulgation{}, err
	}
	return d, nil
}

type Result struct {
	Divulgation Divulgation
	From        Status
	Rewards     rewards.Outcome
	Noop        bool
}

// SetStatus: solo la transición hacia REVIEWED otorga voice_for_the_voiceless.
func (s *Service) SetStatus(ctx context.Context, id string, to Status) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" || !to.Valid() {
		return Result{}, ErrInvalidInput
	}

	var res Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		d, err := tx.LockDivulgation(ctx, id)
		if err != nil {
			return err
		}
		res = Result{Divulgation: d, From: d.Status}
		if d.Status == to {
			res.Noop = true
			return nil
		}

		now := s.now().UTC()
		if err := tx.UpdateDivulgationStatus(ctx, d.ID, to, now); err != nil {
			return err
		}
		res.Divulgation.Status = to
		res.Divulgation.UpdatedAt = now

		if to == StatusReviewed {
			out, err := s.ledger.OnDivulgationReviewed(ctx, tx, d.UserID)
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
	d := res.Divulgation
	err := s.pub.Publish(ctx, notify.KeyDivulgationStatusChanged, notify.Event{
		ID:         uuid.NewString(),
		Type:       notify.KeyDivulgationStatusChanged,
		OccurredAt: d.UpdatedAt,
		Payload: map[string]any{
			"divulgation_id": d.ID,
			"user_id":        d.UserID,
			"from":           string(res.From),
			"to":             string(d.Status),
		},
	})
	if err != nil {
		s.log.Warn("publish divulgation status failed", map[string]any{"divulgation_id": d.ID, "error": err})
	}

	if !res.Rewards.Empty() {
		rewards.PublishOutcome(ctx, s.pub, s.log, "divulgation_reviewed", d.UserID, res.Rewards, d.UpdatedAt)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Divulgation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Divulgation{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Divulgation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListPublished devuelve las divulgaciones ya revisadas.
func (s *Service) ListPublished(ctx context.Context) ([]Divulgation, error) {
	return s.repo.ListByStatus(ctx, StatusReviewed)
}
