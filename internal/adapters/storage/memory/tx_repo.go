package memory

import (
	"context"
	"sort"
	"time"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"

	"github.com/shopspring/decimal"
)

// txRepo implementa todas las vistas transaccionales sobre una copia del estado.
// Con el lock del Store tomado, "Lock*" equivale a leer.
type txRepo struct {
	st *state
}

// -------------------------
// rewards.Store
// -------------------------

func (t *txRepo) EnsureUser(ctx context.Context, id, name string) error {
	if id == "" {
		return errIDRequired
	}
	u, ok := t.st.users[id]
	if !ok {
		t.st.users[id] = rewards.User{ID: id, Name: name, CreatedAt: time.Now().UTC()}
		return nil
	}
	if name != "" && u.Name == "" {
		u.Name = name
		t.st.users[id] = u
	}
	return nil
}

func (t *txRepo) GetUser(ctx context.Context, id string) (rewards.User, error) {
	u, ok := t.st.users[id]
	if !ok {
		return rewards.User{}, rewards.ErrUserNotFound
	}
	return u, nil
}

func (t *txRepo) LockUser(ctx context.Context, id string) (rewards.User, error) {
	return t.GetUser(ctx, id)
}

func (t *txRepo) IncrementPoints(ctx context.Context, userID string, amount int64) error {
	u, ok := t.st.users[userID]
	if !ok {
		return rewards.ErrUserNotFound
	}
	u.Points += amount
	t.st.users[userID] = u
	return nil
}

func (t *txRepo) SetLastLoginReward(ctx context.Context, userID string, at time.Time) error {
	u, ok := t.st.users[userID]
	if !ok {
		return rewards.ErrUserNotFound
	}
	u.LastLoginRewardAt = &at
	t.st.users[userID] = u
	return nil
}

func (t *txRepo) InsertLoginRecord(ctx context.Context, rec rewards.LoginRecord) error {
	for _, r := range t.st.logins {
		if r.UserID == rec.UserID && r.Day.Equal(rec.Day) {
			return errAlreadyExists
		}
	}
	t.st.logins = append(t.st.logins, rec)
	return nil
}

func (t *txRepo) GetAchievement(ctx context.Context, code rewards.AchievementCode) (rewards.Achievement, error) {
	a, ok := t.st.achievements[code]
	if !ok {
		return rewards.Achievement{}, rewards.ErrAchievementNotFound
	}
	return a, nil
}

func (t *txRepo) HasUserAchievement(ctx context.Context, userID string, code rewards.AchievementCode) (bool, error) {
	_, ok := t.st.earned[userID][code]
	return ok, nil
}

func (t *txRepo) InsertUserAchievement(ctx context.Context, ua rewards.UserAchievement) (bool, error) {
	m := t.st.earned[ua.UserID]
	if m == nil {
		m = make(map[rewards.AchievementCode]rewards.UserAchievement)
		t.st.earned[ua.UserID] = m
	}
	if _, ok := m[ua.Code]; ok {
		return false, nil
	}
	m[ua.Code] = ua
	return true, nil
}

func (t *txRepo) CountConfirmedDonations(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, d := range t.st.donations {
		if d.UserID == userID && d.Status == donations.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (t *txRepo) SumConfirmedDonations(ctx context.Context, userID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range t.st.donations {
		if d.UserID == userID && d.Status == donations.StatusConfirmed {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

func (t *txRepo) CountApprovedAdoptions(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, r := range t.st.requests {
		if r.UserID == userID && r.Status == adoptions.StatusApproved {
			n++
		}
	}
	return n, nil
}

// -------------------------
// adoptions.Tx
// -------------------------

func (t *txRepo) LockAnimal(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := t.st.animals[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (t *txRepo) CompareAndSetAnimalStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) (bool, error) {
	a, ok := t.st.animals[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	a.UpdatedAt = at
	t.st.animals[id] = a
	return true, nil
}

func (t *txRepo) SetAnimalStatus(ctx context.Context, id string, to animals.Status, at time.Time) error {
	a, ok := t.st.animals[id]
	if !ok {
		return animals.ErrNotFound
	}
	a.Status = to
	a.UpdatedAt = at
	t.st.animals[id] = a
	return nil
}

func (t *txRepo) GetRequest(ctx context.Context, id string) (adoptions.Request, error) {
	r, ok := t.st.requests[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	r.Answers = copyAnswers(r.Answers)
	return r, nil
}

func (t *txRepo) LockRequest(ctx context.Context, id string) (adoptions.Request, error) {
	return t.GetRequest(ctx, id)
}

func (t *txRepo) InsertRequest(ctx context.Context, r adoptions.Request) error {
	if r.ID == "" {
		return errIDRequired
	}
	if _, exists := t.st.requests[r.ID]; exists {
		return errAlreadyExists
	}
	r.Answers = copyAnswers(r.Answers)
	t.st.requests[r.ID] = r
	return nil
}

func (t *txRepo) UpdateRequestStatus(ctx context.Context, id string, status adoptions.Status, completedAt *time.Time, at time.Time) error {
	r, ok := t.st.requests[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	r.Status = status
	r.CompletedAt = completedAt
	r.UpdatedAt = at
	t.st.requests[id] = r
	return nil
}

func (t *txRepo) RejectOpenRequests(ctx context.Context, animalID, exceptID string, at time.Time) ([]string, error) {
	ids := make([]string, 0)
	for id, r := range t.st.requests {
		if r.AnimalID != animalID || id == exceptID || !r.Status.Open() {
			continue
		}
		done := at
		r.Status = adoptions.StatusRejected
		r.CompletedAt = &done
		r.UpdatedAt = at
		t.st.requests[id] = r
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (t *txRepo) CountApprovedRequests(ctx context.Context, animalID, exceptID string) (int, error) {
	n := 0
	for id, r := range t.st.requests {
		if r.AnimalID == animalID && id != exceptID && r.Status == adoptions.StatusApproved {
			n++
		}
	}
	return n, nil
}

func (t *txRepo) HasOpenRequest(ctx context.Context, animalID, userID, exceptID string) (bool, error) {
	for id, r := range t.st.requests {
		if r.AnimalID == animalID && r.UserID == userID && id != exceptID && r.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

// -------------------------
// donations.Tx
// -------------------------

func (t *txRepo) InsertDonation(ctx context.Context, d donations.Donation) error {
	if d.ID == "" {
		return errIDRequired
	}
	if _, exists := t.st.donations[d.ID]; exists {
		return errAlreadyExists
	}
	t.st.donations[d.ID] = d
	return nil
}

func (t *txRepo) LockDonation(ctx context.Context, id string) (donations.Donation, error) {
	d, ok := t.st.donations[id]
	if !ok {
		return donations.Donation{}, donations.ErrNotFound
	}
	return d, nil
}

func (t *txRepo) UpdateDonationStatus(ctx context.Context, id string, status donations.Status, at time.Time) error {
	d, ok := t.st.donations[id]
	if !ok {
		return donations.ErrNotFound
	}
	d.Status = status
	d.UpdatedAt = at
	t.st.donations[id] = d
	return nil
}

func (t *txRepo) MarkDonationRewarded(ctx context.Context, id string, at time.Time) error {
	d, ok := t.st.donations[id]
	if !ok {
		return donations.ErrNotFound
	}
	if d.RewardedAt == nil {
		d.RewardedAt = &at
		t.st.donations[id] = d
	}
	return nil
}

// -------------------------
// volunteers.Tx
// -------------------------

func (t *txRepo) InsertApplication(ctx context.Context, a volunteers.Application) error {
	if a.ID == "" {
		return errIDRequired
	}
	if _, exists := t.st.applications[a.ID]; exists {
		return errAlreadyExists
	}
	t.st.applications[a.ID] = a
	return nil
}

func (t *txRepo) LockApplication(ctx context.Context, id string) (volunteers.Application, error) {
	a, ok := t.st.applications[id]
	if !ok {
		return volunteers.Application{}, volunteers.ErrNotFound
	}
	return a, nil
}

func (t *txRepo) UpdateApplicationStatus(ctx context.Context, id string, status volunteers.Status, at time.Time) error {
	a, ok := t.st.applications[id]
	if !ok {
		return volunteers.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = at
	t.st.applications[id] = a
	return nil
}

// -------------------------
// divulgations.Tx
// -------------------------

func (t *txRepo) InsertDivulgation(ctx context.Context, d divulgations.Divulgation) error {
	if d.ID == "" {
		return errIDRequired
	}
	if _, exists := t.st.divulgations[d.ID]; exists {
		return errAlreadyExists
	}
	t.st.divulgations[d.ID] = d
	return nil
}

func (t *txRepo) LockDivulgation(ctx context.Context, id string) (divulgations.Divulgation, error) {
	d, ok := t.st.divulgations[id]
	if !ok {
		return divulgations.Divulgation{}, divulgations.ErrNotFound
	}
	return d, nil
}

func (t *txRepo) UpdateDivulgationStatus(ctx context.Context, id string, status divulgations.Status, at time.Time) error {
	d, ok := t.st.divulgations[id]
	if !ok {
		return divulgations.ErrNotFound
	}
	d.Status = status
	d.UpdatedAt = at
	t.st.divulgations[id] = d
	return nil
}
