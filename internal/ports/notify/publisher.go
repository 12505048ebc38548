package notify

import (
	"context"
	"time"
)

// Routing keys publicadas después del commit.
const (
	KeyAdoptionStatusChanged    = "adoption.request.status_changed"
	KeyDonationStatusChanged    = "donation.status_changed"
	KeyVolunteerStatusChanged   = "volunteer.application.status_changed"
	KeyDivulgationStatusChanged = "divulgation.status_changed"
	KeyAchievementUnlocked      = "rewards.achievement.unlocked"
	KeyDailyLoginRewarded       = "rewards.daily_login.rewarded"
)

// Event es el sobre común de las notificaciones.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher publica eventos de forma best-effort: un error nunca deshace
// la transacción que ya se confirmó.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, ev Event) error
	Close()
}

// Nop descarta todo (modo dev / broker no configurado).
type Nop struct{}

func (Nop) Publish(context.Context, string, Event) error { return nil }
func (Nop) Close()                                       {}
