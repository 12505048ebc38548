package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// txRepo implementa todas las vistas transaccionales sobre la misma *sqlx.Tx.
type txRepo struct {
	tx *sqlx.Tx
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// -------------------------
// rewards.Store
// -------------------------

func (t *txRepo) EnsureUser(ctx context.Context, id, name string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO users (id, name, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name
			WHERE users.name = '' AND EXCLUDED.name <> ''
	`, id, name)
	if err != nil {
		return fmt.Errorf("postgres: ensure user: %w", err)
	}
	return nil
}

func (t *txRepo) GetUser(ctx context.Context, id string) (rewards.User, error) {
	return t.selectUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (t *txRepo) LockUser(ctx context.Context, id string) (rewards.User, error) {
	return t.selectUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (t *txRepo) selectUser(ctx context.Context, query, id string) (rewards.User, error) {
	var row userRow
	if err := t.tx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rewards.User{}, rewards.ErrUserNotFound
		}
		return rewards.User{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) IncrementPoints(ctx context.Context, userID string, amount int64) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE users SET points = points + $2 WHERE id = $1`, userID, amount)
	if err != nil {
		return err
	}
	return expectOne(res, rewards.ErrUserNotFound)
}

func (t *txRepo) SetLastLoginReward(ctx context.Context, userID string, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE users SET last_login_reward_at = $2 WHERE id = $1`, userID, at)
	if err != nil {
		return err
	}
	return expectOne(res, rewards.ErrUserNotFound)
}

// InsertLoginRecord manda el día como texto: un time.Time contra DATE se
// convierte con el TimeZone de la sesión y puede caer en el día anterior.
func (t *txRepo) InsertLoginRecord(ctx context.Context, rec rewards.LoginRecord) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO login_records (id, user_id, day, points_awarded, created_at)
		VALUES ($1, $2, $3::date, $4, $5)
	`, rec.ID, rec.UserID, rec.Day.UTC().Format(dayLayout), rec.PointsAwarded, rec.CreatedAt)
	return err
}

func (t *txRepo) GetAchievement(ctx context.Context, code rewards.AchievementCode) (rewards.Achievement, error) {
	var row achievementRow
	err := t.tx.GetContext(ctx, &row, `
		SELECT code, name, description, bonus_points FROM achievements WHERE code = $1
	`, string(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rewards.Achievement{}, rewards.ErrAchievementNotFound
		}
		return rewards.Achievement{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) HasUserAchievement(ctx context.Context, userID string, code rewards.AchievementCode) (bool, error) {
	var exists bool
	err := t.tx.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM user_achievements WHERE user_id = $1 AND achievement_code = $2)
	`, userID, string(code))
	return exists, err
}

// InsertUserAchievement: la PK (user_id, achievement_code) resuelve la carrera entre
// dos transacciones que pasaron el chequeo a la vez.
func (t *txRepo) InsertUserAchievement(ctx context.Context, ua rewards.UserAchievement) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO user_achievements (user_id, achievement_code, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_code) DO NOTHING
	`, ua.UserID, string(ua.Code), ua.EarnedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *txRepo) CountConfirmedDonations(ctx context.Context, userID string) (int, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM donations WHERE user_id = $1 AND status = $2
	`, userID, string(donations.StatusConfirmed))
	return n, err
}

func (t *txRepo) SumConfirmedDonations(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := t.tx.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0) FROM donations WHERE user_id = $1 AND status = $2
	`, userID, string(donations.StatusConfirmed))
	return total, err
}

func (t *txRepo) CountApprovedAdoptions(ctx context.Context, userID string) (int, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM adoption_requests WHERE user_id = $1 AND status = $2
	`, userID, string(adoptions.StatusApproved))
	return n, err
}

// -------------------------
// adoptions.Tx
// -------------------------

func (t *txRepo) LockAnimal(ctx context.Context, id string) (animals.Animal, error) {
	var row animalRow
	err := t.tx.GetContext(ctx, &row, `SELECT `+animalColumns+` FROM animals WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) CompareAndSetAnimalStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE animals SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), at)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *txRepo) SetAnimalStatus(ctx context.Context, id string, to animals.Status, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE animals SET status = $2, updated_at = $3 WHERE id = $1`, id, string(to), at)
	if err != nil {
		return err
	}
	return expectOne(res, animals.ErrNotFound)
}

func (t *txRepo) GetRequest(ctx context.Context, id string) (adoptions.Request, error) {
	return t.selectRequest(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1`, id)
}

func (t *txRepo) LockRequest(ctx context.Context, id string) (adoptions.Request, error) {
	return t.selectRequest(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1 FOR UPDATE`, id)
}

func (t *txRepo) selectRequest(ctx context.Context, query, id string) (adoptions.Request, error) {
	var row requestRow
	if err := t.tx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return row.toDomain()
}

func (t *txRepo) InsertRequest(ctx context.Context, r adoptions.Request) error {
	answers := r.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id, animal_id, user_id, status, answers, completed_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		r.ID,
		r.AnimalID,
		r.UserID,
		string(r.Status),
		raw,
		toNullTime(r.CompletedAt),
		r.CreatedAt,
		r.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user already has an open request for this animal", adoptions.ErrConflict)
	}
	return err
}

func (t *txRepo) UpdateRequestStatus(ctx context.Context, id string, status adoptions.Status, completedAt *time.Time, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $2, completed_at = $3, updated_at = $4
		WHERE id = $1
	`, id, string(status), toNullTime(completedAt), at)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s would break a uniqueness rule", adoptions.ErrConflict, status)
	}
	if err != nil {
		return err
	}
	return expectOne(res, adoptions.ErrNotFound)
}

func (t *txRepo) RejectOpenRequests(ctx context.Context, animalID, exceptID string, at time.Time) ([]string, error) {
	ids := make([]string, 0)
	err := t.tx.SelectContext(ctx, &ids, `
		UPDATE adoption_requests
		SET status = $3, completed_at = $4, updated_at = $4
		WHERE animal_id = $1 AND id <> $2 AND status IN ($5, $6)
		RETURNING id
	`,
		animalID,
		exceptID,
		string(adoptions.StatusRejected),
		at,
		string(adoptions.StatusRequested),
		string(adoptions.StatusUnderReview),
	)
	return ids, err
}

func (t *txRepo) CountApprovedRequests(ctx context.Context, animalID, exceptID string) (int, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM adoption_requests WHERE animal_id = $1 AND id <> $2 AND status = $3
	`, animalID, exceptID, string(adoptions.StatusApproved))
	return n, err
}

func (t *txRepo) HasOpenRequest(ctx context.Context, animalID, userID, exceptID string) (bool, error) {
	var exists bool
	err := t.tx.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM adoption_requests
			WHERE animal_id = $1 AND user_id = $2 AND id <> $3 AND status IN ($4, $5)
		)
	`, animalID, userID, exceptID, string(adoptions.StatusRequested), string(adoptions.StatusUnderReview))
	return exists, err
}

// -------------------------
// donations.Tx
// -------------------------

func (t *txRepo) InsertDonation(ctx context.Context, d donations.Donation) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO donations (id, user_id, amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, d.ID, toNullString(d.UserID), d.Amount, string(d.Status), d.CreatedAt, d.UpdatedAt)
	return err
}

func (t *txRepo) LockDonation(ctx context.Context, id string) (donations.Donation, error) {
	var row donationRow
	err := t.tx.GetContext(ctx, &row, `SELECT `+donationColumns+` FROM donations WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return donations.Donation{}, donations.ErrNotFound
		}
		return donations.Donation{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) UpdateDonationStatus(ctx context.Context, id string, status donations.Status, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE donations SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return err
	}
	return expectOne(res, donations.ErrNotFound)
}

func (t *txRepo) MarkDonationRewarded(ctx context.Context, id string, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE donations SET rewarded_at = COALESCE(rewarded_at, $2) WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	return expectOne(res, donations.ErrNotFound)
}

// -------------------------
// volunteers.Tx
// -------------------------

func (t *txRepo) InsertApplication(ctx context.Context, a volunteers.Application) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO volunteer_applications (id, user_id, motivation, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, a.ID, a.UserID, a.Motivation, string(a.Status), a.CreatedAt, a.UpdatedAt)
	return err
}

func (t *txRepo) LockApplication(ctx context.Context, id string) (volunteers.Application, error) {
	var row applicationRow
	err := t.tx.GetContext(ctx, &row, `SELECT `+applicationColumns+` FROM volunteer_applications WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return volunteers.Application{}, volunteers.ErrNotFound
		}
		return volunteers.Application{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) UpdateApplicationStatus(ctx context.Context, id string, status volunteers.Status, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE volunteer_applications SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return err
	}
	return expectOne(res, volunteers.ErrNotFound)
}

// -------------------------
// divulgations.Tx
// -------------------------

func (t *txRepo) InsertDivulgation(ctx context.Context, d divulgations.Divulgation) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO divulgations (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, d.ID, d.UserID, d.Title, d.Description, string(d.Status), d.CreatedAt, d.UpdatedAt)
	return err
}

func (t *txRepo) LockDivulgation(ctx context.Context, id string) (divulgations.Divulgation, error) {
	var row divulgationRow
	err := t.tx.GetContext(ctx, &row, `SELECT `+divulgationColumns+` FROM divulgations WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return divulgations.Divulgation{}, divulgations.ErrNotFound
		}
		return divulgations.Divulgation{}, err
	}
	return row.toDomain(), nil
}

func (t *txRepo) UpdateDivulgationStatus(ctx context.Context, id string, status divulgations.Status, at time.Time) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE divulgations SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return err
	}
	return expectOne(res, divulgations.ErrNotFound)
}
