package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// -------------------------
// Test store (in-memory)
// -------------------------

type testStore struct {
	users        map[string]User
	achievements map[AchievementCode]Achievement
	earned       map[string]map[AchievementCode]UserAchievement
	logins       []LoginRecord

	confirmed map[string][]decimal.Decimal
	approved  map[string]int
	locked    []string

	failIncrement error
}

func newTestStore() *testStore {
	st := &testStore{
		users:        map[string]User{},
		achievements: map[AchievementCode]Achievement{},
		earned:       map[string]map[AchievementCode]UserAchievement{},
		confirmed:    map[string][]decimal.Decimal{},
		approved:     map[string]int{},
	}
	for _, a := range DefaultCatalog() {
		st.achievements[a.Code] = a
	}
	return st
}

func (s *testStore) EnsureUser(ctx context.Context, id, name string) error {
	if _, ok := s.users[id]; !ok {
		s.users[id] = User{ID: id, Name: name}
	}
	return nil
}

func (s *testStore) GetUser(ctx context.Context, id string) (User, error) {
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *testStore) LockUser(ctx context.Context, id string) (User, error) {
	s.locked = append(s.locked, id)
	return s.GetUser(ctx, id)
}

func (s *testStore) IncrementPoints(ctx context.Context, userID string, amount int64) error {
	if s.failIncrement != nil {
		return s.failIncrement
	}
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Points += amount
	s.users[userID] = u
	return nil
}

func (s *testStore) SetLastLoginReward(ctx context.Context, userID string, at time.Time) error {
	u := s.users[userID]
	u.LastLoginRewardAt = &at
	s.users[userID] = u
	return nil
}

func (s *testStore) InsertLoginRecord(ctx context.Context, rec LoginRecord) error {
	s.logins = append(s.logins, rec)
	return nil
}

func (s *testStore) GetAchievement(ctx context.Context, code AchievementCode) (Achievement, error) {
	a, ok := s.achievements[code]
	if !ok {
		return Achievement{}, ErrAchievementNotFound
	}
	return a, nil
}

func (s *testStore) HasUserAchievement(ctx context.Context, userID string, code AchievementCode) (bool, error) {
	_, ok := s.earned[userID][code]
	return ok, nil
}

func (s *testStore) InsertUserAchievement(ctx context.Context, ua UserAchievement) (bool, error) {
	if s.earned[ua.UserID] == nil {
		s.earned[ua.UserID] = map[AchievementCode]UserAchievement{}
	}
	if _, ok := s.earned[ua.UserID][ua.Code]; ok {
		return false, nil
	}
	s.earned[ua.UserID][ua.Code] = ua
	return true, nil
}

func (s *testStore) CountConfirmedDonations(ctx context.Context, userID string) (int, error) {
	return len(s.confirmed[userID]), nil
}

func (s *testStore) SumConfirmedDonations(ctx context.Context, userID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range s.confirmed[userID] {
		total = total.Add(a)
	}
	return total, nil
}

func (s *testStore) CountApprovedAdoptions(ctx context.Context, userID string) (int, error) {
	return s.approved[userID], nil
}

type testToggle struct {
	on  bool
	err error
}

func (t *testToggle) GamificationEnabled(ctx context.Context) (bool, error) { return t.on, t.err }

func newTestLedger(on bool) (*Ledger, *testToggle) {
	tg := &testToggle{on: on}
	l := NewLedger(tg, nil)
	l.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }
	return l, tg
}

// -------------------------
// Tests
// -------------------------

func TestLedger_AddPoints_NoopCases(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")

	l, tg := newTestLedger(true)

	if out, err := l.AddPoints(ctx, st, "u1", 0); err != nil || !out.Empty() {
		t.Fatalf("amount 0 must be a no-op, got %+v err=%v", out, err)
	}
	if out, err := l.AddPoints(ctx, st, "u1", -3); err != nil || !out.Empty() {
		t.Fatalf("negative amount must be a no-op, got %+v err=%v", out, err)
	}
	if out, err := l.AddPoints(ctx, st, "  ", 10); err != nil || !out.Empty() {
		t.Fatalf("missing user must be a no-op, got %+v err=%v", out, err)
	}
	if out, err := l.AddPoints(ctx, st, "ghost", 10); err != nil || !out.Empty() {
		t.Fatalf("unknown user must be a no-op, got %+v err=%v", out, err)
	}

	tg.on = false
	if out, err := l.AddPoints(ctx, st, "u1", 10); err != nil || !out.Empty() {
		t.Fatalf("toggle off must be a no-op, got %+v err=%v", out, err)
	}
	if st.users["u1"].Points != 0 {
		t.Fatalf("expected 0 points, got %d", st.users["u1"].Points)
	}

	tg.on = true
	if _, err := l.AddPoints(ctx, st, "u1", 7); err != nil {
		t.Fatalf("AddPoints error: %v", err)
	}
	if st.users["u1"].Points != 7 {
		t.Fatalf("expected 7 points, got %d", st.users["u1"].Points)
	}
}

func TestLedger_GrantAchievementIfAbsent_ExactlyOnce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	first, err := l.GrantAchievementIfAbsent(ctx, st, "u1", AchievementVolunteerHeart)
	if err != nil {
		t.Fatalf("grant #1 error: %v", err)
	}
	second, err := l.GrantAchievementIfAbsent(ctx, st, "u1", AchievementVolunteerHeart)
	if err != nil {
		t.Fatalf("grant #2 error: %v", err)
	}

	if len(first.Unlocked) != 1 || first.PointsAdded != 20 {
		t.Fatalf("expected unlock with 20 bonus, got %+v", first)
	}
	if !second.Empty() {
		t.Fatalf("second grant must be a no-op, got %+v", second)
	}
	if len(st.earned["u1"]) != 1 {
		t.Fatalf("expected exactly 1 user achievement, got %d", len(st.earned["u1"]))
	}
	if st.users["u1"].Points != 20 {
		t.Fatalf("expected bonus credited once (20), got %d", st.users["u1"].Points)
	}
}

func TestLedger_GrantAchievement_UnknownCodeIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	out, err := l.GrantAchievementIfAbsent(ctx, st, "u1", AchievementCode("does_not_exist"))
	if err != nil {
		t.Fatalf("unknown achievement must not fail: %v", err)
	}
	if !out.Empty() || len(st.earned["u1"]) != 0 {
		t.Fatalf("unknown achievement must not grant anything")
	}
}

func TestLedger_OnDonationConfirmed_GuardianAngelOnThresholdCrossing(t *testing.T) {
	// R$50 x3 (total 150) y luego R$60 (total 210): guardian_angel solo en la cuarta.
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	amounts := []decimal.Decimal{
		decimal.NewFromInt(50),
		decimal.NewFromInt(50),
		decimal.NewFromInt(50),
		decimal.NewFromInt(60),
	}

	var outcomes []Outcome
	for _, a := range amounts {
		st.confirmed["u1"] = append(st.confirmed["u1"], a)
		out, err := l.OnDonationConfirmed(ctx, st, "u1", a)
		if err != nil {
			t.Fatalf("OnDonationConfirmed error: %v", err)
		}
		outcomes = append(outcomes, out)
	}

	if !hasCode(outcomes[0], AchievementFirstSupporter) {
		t.Fatalf("expected first_supporter on first donation, got %+v", outcomes[0])
	}
	for i := 0; i < 3; i++ {
		if hasCode(outcomes[i], AchievementGuardianAngel) {
			t.Fatalf("guardian_angel must not unlock before threshold (donation %d)", i+1)
		}
	}
	if !hasCode(outcomes[3], AchievementGuardianAngel) {
		t.Fatalf("expected guardian_angel on fourth donation, got %+v", outcomes[3])
	}

	// 50+50+50+60 = 210 por donaciones + 10 first_supporter + 50 guardian_angel
	if got := st.users["u1"].Points; got != 270 {
		t.Fatalf("expected 270 points, got %d", got)
	}

	// Una quinta donación no vuelve a otorgar guardian_angel.
	st.confirmed["u1"] = append(st.confirmed["u1"], decimal.NewFromInt(5))
	out, err := l.OnDonationConfirmed(ctx, st, "u1", decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("OnDonationConfirmed #5 error: %v", err)
	}
	if len(out.Unlocked) != 0 || out.PointsAdded != 5 {
		t.Fatalf("expected only 5 points on fifth donation, got %+v", out)
	}
}

func TestLedger_OnDonationConfirmed_FloorsAmount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	amount := decimal.RequireFromString("19.99")
	st.confirmed["u1"] = []decimal.Decimal{decimal.NewFromInt(1), amount}

	out, err := l.OnDonationConfirmed(ctx, st, "u1", amount)
	if err != nil {
		t.Fatalf("OnDonationConfirmed error: %v", err)
	}
	if out.PointsAdded != 19 {
		t.Fatalf("expected floor(19.99)=19 points, got %d", out.PointsAdded)
	}
}

func TestLedger_OnDonationConfirmed_LocksUserEvenWithoutPoints(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	// R$0,50 no suma puntos, pero la regla igual serializa por usuario.
	amount := decimal.RequireFromString("0.50")
	st.confirmed["u1"] = []decimal.Decimal{amount}

	out, err := l.OnDonationConfirmed(ctx, st, "u1", amount)
	if err != nil {
		t.Fatalf("OnDonationConfirmed error: %v", err)
	}
	if len(st.locked) == 0 || st.locked[0] != "u1" {
		t.Fatalf("expected user row locked before evaluating, got %v", st.locked)
	}
	if !hasCode(out, AchievementFirstSupporter) {
		t.Fatalf("expected first_supporter, got %+v", out)
	}
	// 0 por la donación + 10 del logro
	if got := st.users["u1"].Points; got != 10 {
		t.Fatalf("expected 10 points, got %d", got)
	}
}

func TestLedger_OnAdoptionApproved_OnlyFirstApproval(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	st.approved["u1"] = 1
	out, err := l.OnAdoptionApproved(ctx, st, "u1")
	if err != nil {
		t.Fatalf("OnAdoptionApproved error: %v", err)
	}
	if !hasCode(out, AchievementAnimalHero) {
		t.Fatalf("expected animal_hero, got %+v", out)
	}

	st.approved["u1"] = 2
	delete(st.earned, "u1")
	out, err = l.OnAdoptionApproved(ctx, st, "u1")
	if err != nil {
		t.Fatalf("OnAdoptionApproved #2 error: %v", err)
	}
	if !out.Empty() {
		t.Fatalf("second approval must not grant animal_hero, got %+v", out)
	}
}

func TestLedger_ToggleOff_GrantsNothing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(false)

	st.confirmed["u1"] = []decimal.Decimal{decimal.NewFromInt(500)}
	st.approved["u1"] = 1

	calls := []func() (Outcome, error){
		func() (Outcome, error) { return l.OnDonationConfirmed(ctx, st, "u1", decimal.NewFromInt(500)) },
		func() (Outcome, error) { return l.OnAdoptionApproved(ctx, st, "u1") },
		func() (Outcome, error) { return l.OnVolunteerApproved(ctx, st, "u1") },
		func() (Outcome, error) { return l.OnDivulgationReviewed(ctx, st, "u1") },
	}
	for i, call := range calls {
		out, err := call()
		if err != nil {
			t.Fatalf("call %d error: %v", i, err)
		}
		if !out.Empty() {
			t.Fatalf("call %d: expected nothing with toggle off, got %+v", i, out)
		}
	}
	if st.users["u1"].Points != 0 || len(st.earned["u1"]) != 0 {
		t.Fatalf("expected no points and no achievements")
	}
}

func TestLedger_ToggleReadError_Propagates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, tg := newTestLedger(true)
	tg.err = errors.New("settings unavailable")

	if _, err := l.OnVolunteerApproved(ctx, st, "u1"); err == nil {
		t.Fatalf("expected toggle error to propagate")
	}
}

func TestLedger_StoreFailure_Propagates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	st.failIncrement = errors.New("db down")
	l, _ := newTestLedger(true)

	_, err := l.OnVolunteerApproved(ctx, st, "u1")
	if err == nil {
		t.Fatalf("expected store failure to propagate")
	}
	if !errors.Is(err, st.failIncrement) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestLedger_RecordDailyLogin_OncePerUTCDay(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	_ = st.EnsureUser(ctx, "u1", "Ana")
	l, _ := newTestLedger(true)

	day1 := time.Date(2025, 12, 22, 23, 59, 0, 0, time.UTC)
	l.now = func() time.Time { return day1 }

	out, ok, err := l.RecordDailyLogin(ctx, st, "u1")
	if err != nil || !ok || out.PointsAdded != DailyLoginPoints {
		t.Fatalf("expected first login rewarded, got ok=%v out=%+v err=%v", ok, out, err)
	}

	_, ok, err = l.RecordDailyLogin(ctx, st, "u1")
	if err != nil || ok {
		t.Fatalf("expected second login same day not rewarded, got ok=%v err=%v", ok, err)
	}

	// Un minuto después ya es otro día en UTC.
	l.now = func() time.Time { return day1.Add(2 * time.Minute) }
	_, ok, err = l.RecordDailyLogin(ctx, st, "u1")
	if err != nil || !ok {
		t.Fatalf("expected next-day login rewarded, got ok=%v err=%v", ok, err)
	}

	if st.users["u1"].Points != 2*DailyLoginPoints {
		t.Fatalf("expected %d points, got %d", 2*DailyLoginPoints, st.users["u1"].Points)
	}
	if len(st.logins) != 2 {
		t.Fatalf("expected 2 login records, got %d", len(st.logins))
	}
	if !st.logins[1].Day.Equal(time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected login record day: %s", st.logins[1].Day)
	}
}

func hasCode(o Outcome, code AchievementCode) bool {
	for _, c := range o.Unlocked {
		if c == code {
			return true
		}
	}
	return false
}
