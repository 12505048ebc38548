package rewards

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/metrics"
	"pet-adoption-hub/internal/platform/txn"
	"pet-adoption-hub/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 100
)

type Service struct {
	tx     txn.Manager[Store]
	repo   Repository
	ledger *Ledger
	pub    notify.Publisher
	log    logger.Logger
	now    func() time.Time
}

func NewService(tx txn.Manager[Store], repo Repository, ledger *Ledger, pub notify.Publisher, log logger.Logger) *Service {
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
		log:    log.With(map[string]any{"component": "rewards"}),
		now:    time.Now,
	}
}

type DailyLoginResult struct {
	Rewarded bool
	Outcome  Outcome
	User     User
}

// ClaimDailyLogin es el flujo de login diario: registra al usuario si hace falta
// y acredita el bonus si todavía no se dio hoy.
func (s *Service) ClaimDailyLogin(ctx context.Context, userID, name string) (DailyLoginResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return DailyLoginResult{}, ErrInvalidInput
	}

	var res DailyLoginResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.EnsureUser(ctx, userID, strings.TrimSpace(name)); err != nil {
			return err
		}
		out, ok, err := s.ledger.RecordDailyLogin(ctx, st, userID)
		if err != nil {
			return err
		}
		u, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		res = DailyLoginResult{Rewarded: ok, Outcome: out, User: u}
		return nil
	})
	if err != nil {
		return DailyLoginResult{}, err
	}

	if res.Rewarded {
		metrics.RecordReward("daily_login", res.Outcome.PointsAdded, nil)
		s.publish(ctx, notify.KeyDailyLoginRewarded, map[string]any{
			"user_id": userID,
			"points":  res.Outcome.PointsAdded,
		})
	}
	return res, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	items, err := s.repo.ListUserAchievements(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, Achievements: items}, nil
}

func (s *Service) Ranking(ctx context.Context, limit int) ([]RankingEntry, error) {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	if limit > maxRankingLimit {
		limit = maxRankingLimit
	}
	return s.repo.TopUsers(ctx, limit)
}

func (s *Service) Catalog(ctx context.Context) ([]Achievement, error) {
	return s.repo.ListAchievements(ctx)
}

// ResetRanking pone en cero los puntos de todos. No compite con los invariantes
// por usuario, por eso no pasa por el ledger.
func (s *Service) ResetRanking(ctx context.Context) (int64, error) {
	n, err := s.repo.ResetPoints(ctx)
	metrics.RecordRankingReset(n, err)
	if err != nil {
		s.log.Error("ranking reset failed", map[string]any{"error": err})
		return 0, err
	}
	s.log.Info("ranking reset", map[string]any{"users": n})
	return n, nil
}

// PublishOutcome notifica logros desbloqueados (post-commit, best-effort).
// Lo usan también los demás módulos después de confirmar su transacción.
func PublishOutcome(ctx context.Context, pub notify.Publisher, log logger.Logger, trigger, userID string, out Outcome, at time.Time) {
	metrics.RecordReward(trigger, out.PointsAdded, out.UnlockedStrings())
	if pub == nil {
		return
	}
	for _, code := range out.Unlocked {
		err := pub.Publish(ctx, notify.KeyAchievementUnlocked, notify.Event{
			ID:         uuid.NewString(),
			Type:       notify.KeyAchievementUnlocked,
			OccurredAt: at,
			Payload: map[string]any{
				"user_id": userID,
				"code":    string(code),
				"trigger": trigger,
			},
		})
		if err != nil && log != nil {
			log.Warn("publish achievement failed", map[string]any{"code": string(code), "user_id": userID, "error": err})
		}
	}
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	err := s.pub.Publish(ctx, key, notify.Event{
		ID:         uuid.NewString(),
		Type:       key,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		s.log.Warn("publish failed", map[string]any{"routing_key": key, "error": err})
	}
}
