package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reglas por evento. Cada una lee el toggle una única vez al inicio y usa
// agregados leídos en la misma transacción, nunca flags del caller.

// OnDonationConfirmed: floor(amount) en puntos, first_supporter con la primera
// confirmada y guardian_angel cuando el total confirmado llega al umbral.
// La donación ya debe figurar como CONFIRMED en el store.
func (l *Ledger) OnDonationConfirmed(ctx context.Context, st Store, userID string, amount decimal.Decimal) (Outcome, error) {
	var out Outcome

	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return out, err
	}
	ok, err := l.lockKnownUser(ctx, st, userID)
	if err != nil || !ok {
		return out, err
	}

	pts, err := l.addPoints(ctx, st, userID, amount.Floor().IntPart())
	if err != nil {
		return Outcome{}, err
	}
	out.add(pts)

	count, err := st.CountConfirmedDonations(ctx, userID)
	if err != nil {
		return Outcome{}, fmt.Errorf("rewards: count confirmed donations: %w", err)
	}
	if count == 1 {
		got, err := l.grantIfAbsent(ctx, st, userID, AchievementFirstSupporter)
		if err != nil {
			return Outcome{}, err
		}
		out.add(got)
	}

	total, err := st.SumConfirmedDonations(ctx, userID)
	if err != nil {
		return Outcome{}, fmt.Errorf("rewards: sum confirmed donations: %w", err)
	}
	if total.GreaterThanOrEqual(GuardianAngelThreshold) {
		got, err := l.grantIfAbsent(ctx, st, userID, AchievementGuardianAngel)
		if err != nil {
			return Outcome{}, err
		}
		out.add(got)
	}

	return out, nil
}

// OnAdoptionApproved se llama solo en aprobaciones nuevas (no en reintentos).
// La solicitud ya debe figurar como APPROVED en el store.
func (l *Ledger) OnAdoptionApproved(ctx context.Context, st Store, userID string) (Outcome, error) {
	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return Outcome{}, err
	}
	ok, err := l.knownUser(ctx, st, userID)
	if err != nil || !ok {
		return Outcome{}, err
	}

	count, err := st.CountApprovedAdoptions(ctx, userID)
	if err != nil {
		return Outcome{}, fmt.Errorf("rewards: count approved adoptions: %w", err)
	}
	if count != 1 {
		return Outcome{}, nil
	}
	return l.grantIfAbsent(ctx, st, userID, AchievementAnimalHero)
}

func (l *Ledger) OnVolunteerApproved(ctx context.Context, st Store, userID string) (Outcome, error) {
	return l.grantGated(ctx, st, userID, AchievementVolunteerHeart)
}

// OnDivulgationReviewed: el caller garantiza que es una transición hacia REVIEWED.
func (l *Ledger) OnDivulgationReviewed(ctx context.Context, st Store, userID string) (Outcome, error) {
	return l.grantGated(ctx, st, userID, AchievementVoiceForTheVoiceless)
}

// RecordDailyLogin acredita DailyLoginPoints una vez por día UTC.
// Devuelve false si hoy ya se premió (o la gamificación está apagada).
func (l *Ledger) RecordDailyLogin(ctx context.Context, st Store, userID string) (Outcome, bool, error) {
	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return Outcome{}, false, err
	}

	u, err := st.LockUser(ctx, userID)
	if err != nil {
		return Outcome{}, false, fmt.Errorf("rewards: lock user: %w", err)
	}

	now := l.now().UTC()
	today := startOfDay(now)
	if u.LastLoginRewardAt != nil && startOfDay(u.LastLoginRewardAt.UTC()).Equal(today) {
		return Outcome{}, false, nil
	}

	if err := st.SetLastLoginReward(ctx, u.ID, now); err != nil {
		return Outcome{}, false, fmt.Errorf("rewards: set last login reward: %w", err)
	}
	if err := st.InsertLoginRecord(ctx, LoginRecord{
		ID:            l.newID(),
		UserID:        u.ID,
		Day:           today,
		PointsAwarded: DailyLoginPoints,
		CreatedAt:     now,
	}); err != nil {
		return Outcome{}, false, fmt.Errorf("rewards: insert login record: %w", err)
	}

	out, err := l.addPoints(ctx, st, u.ID, DailyLoginPoints)
	if err != nil {
		return Outcome{}, false, err
	}
	return out, true, nil
}

func (l *Ledger) grantGated(ctx context.Context, st Store, userID string, code AchievementCode) (Outcome, error) {
	on, err := l.Enabled(ctx)
	if err != nil || !on {
		return Outcome{}, err
	}
	ok, err := l.knownUser(ctx, st, userID)
	if err != nil || !ok {
		return Outcome{}, err
	}
	return l.grantIfAbsent(ctx, st, userID, code)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
