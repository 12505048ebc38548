package rewards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/settings"

	"github.com/google/uuid"
)

// Ledger aplica puntos y logros. No abre transacciones: siempre corre sobre
// el Store del flujo que lo invoca, así el premio y el evento se confirman juntos.
type Ledger struct {
	toggle settings.Toggle
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewLedger(toggle settings.Toggle, log logger.Logger) *Ledger {
	if log == nil {
		log = logger.NewNop()
	}
	return &Ledger{
		toggle: toggle,
		log:    log.With(map[string]any{"component": "reward_ledger"}),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Enabled lee el toggle. Sin toggle configurado la gamificación queda apagada.
func (l *Ledger) Enabled(ctx context.Context) (bool, error) {
	if l == nil || l.toggle == nil {
		return false, nil
	}
	on, err := l.toggle.GamificationEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("rewards: read gamification toggle: %w", err)
	}
	return on, nil
}

// AddPoints suma amount a los puntos del usuario.
// No-op si la gamificación está apagada, el usuario falta o amount <= 0.
func (l *Ledger) AddPoints(ctx context.Context, st Store, userID string, amount int64) (Outcome, error) {
	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return Outcome{}, err
	}
	return l.addPoints(ctx, st, userID, amount)
}

// GrantAchievementIfAbsent otorga el logro una sola vez por usuario y acredita su bonus.
func (l *Ledger) GrantAchievementIfAbsent(ctx context.Context, st Store, userID string, code AchievementCode) (Outcome, error) {
	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return Outcome{}, err
	}
	return l.grantIfAbsent(ctx, st, userID, code)
}

func (l *Ledger) addPoints(ctx context.Context, st Store, userID string, amount int64) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || amount <= 0 {
		return Outcome{}, nil
	}

	if err := st.IncrementPoints(ctx, userID, amount); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			l.log.Warn("points skipped: unknown user", map[string]any{"user_id": userID, "amount": amount})
			return Outcome{}, nil
		}
		return Outcome{}, fmt.Errorf("rewards: add points: %w", err)
	}
	return Outcome{PointsAdded: amount}, nil
}

func (l *Ledger) grantIfAbsent(ctx context.Context, st Store, userID string, code AchievementCode) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Outcome{}, nil
	}

	a, err := st.GetAchievement(ctx, code)
	if err != nil {
		if errors.Is(err, ErrAchievementNotFound) {
			// Catálogo incompleto: dato roto, no error del usuario.
			l.log.Error("achievement missing from catalog", map[string]any{"code": string(code), "user_id": userID})
			return Outcome{}, nil
		}
		return Outcome{}, fmt.Errorf("rewards: load achievement %s: %w", code, err)
	}

	has, err := st.HasUserAchievement(ctx, userID, code)
	if err != nil {
		return Outcome{}, fmt.Errorf("rewards: check achievement %s: %w", code, err)
	}
	if has {
		return Outcome{}, nil
	}

	inserted, err := st.InsertUserAchievement(ctx, UserAchievement{
		UserID:   userID,
		Code:     code,
		EarnedAt: l.now().UTC(),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("rewards: insert achievement %s: %w", code, err)
	}
	if !inserted {
		return Outcome{}, nil
	}

	out := Outcome{Unlocked: []AchievementCode{code}}
	bonus, err := l.addPoints(ctx, st, userID, a.BonusPoints)
	if err != nil {
		return Outcome{}, err
	}
	out.add(bonus)

	l.log.Info("achievement unlocked", map[string]any{"code": string(code), "user_id": userID, "bonus": a.BonusPoints})
	return out, nil
}

// knownUser evita escribir premios para usuarios que no existen en el store.
func (l *Ledger) knownUser(ctx context.Context, st Store, userID string) (bool, error) {
	return l.checkUser(ctx, userID, st.GetUser)
}

// lockKnownUser es knownUser tomando el lock de fila: serializa por usuario
// las reglas que leen agregados (suma de donaciones) antes de decidir.
func (l *Ledger) lockKnownUser(ctx context.Context, st Store, userID string) (bool, error) {
	return l.checkUser(ctx, userID, st.LockUser)
}

func (l *Ledger) checkUser(ctx context.Context, userID string, load func(context.Context, string) (User, error)) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	_, err := load(ctx, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUserNotFound) {
		l.log.Warn("reward skipped: unknown user", map[string]any{"user_id": userID})
		return false, nil
	}
	return false, fmt.Errorf("rewards: load user: %w", err)
}
