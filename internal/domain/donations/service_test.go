package donations_test

import (
	"context"
	"testing"

	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*donations.Service, rewards.Repository, *memory.Toggle) {
	t.Helper()
	store := memory.NewStore()
	toggle := memory.NewToggle(true)
	ledger := rewards.NewLedger(toggle, nil)
	svc := donations.NewService(memory.DonationsTx(store), memory.NewDonationsRepo(store), ledger, nil, nil)
	return svc, memory.NewRewardsRepo(store), toggle
}

func donateAndConfirm(t *testing.T, svc *donations.Service, userID string, amount int64) donations.Result {
	t.Helper()
	ctx := context.Background()
	d, err := svc.Create(ctx, donations.CreateInput{UserID: userID, UserName: "Ana", Amount: decimal.NewFromInt(amount)})
	require.NoError(t, err)
	res, err := svc.SetStatus(ctx, d.ID, donations.StatusConfirmed)
	require.NoError(t, err)
	return res
}

func TestSetStatus_GuardianAngelOnceOnThresholdCrossing(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	r1 := donateAndConfirm(t, svc, "u1", 50)
	r2 := donateAndConfirm(t, svc, "u1", 50)
	r3 := donateAndConfirm(t, svc, "u1", 50)
	r4 := donateAndConfirm(t, svc, "u1", 60)

	assert.Equal(t, []rewards.AchievementCode{rewards.AchievementFirstSupporter}, r1.Rewards.Unlocked)
	assert.Empty(t, r2.Rewards.Unlocked)
	assert.Empty(t, r3.Rewards.Unlocked)
	assert.Equal(t, []rewards.AchievementCode{rewards.AchievementGuardianAngel}, r4.Rewards.Unlocked)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	// 210 de donaciones + 10 first_supporter + 50 guardian_angel
	assert.Equal(t, int64(270), u.Points)

	earned, err := repo.ListUserAchievements(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, earned, 2)
}

func TestSetStatus_ReconfirmIsNoop(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	res := donateAndConfirm(t, svc, "u1", 30)
	again, err := svc.SetStatus(ctx, res.Donation.ID, donations.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, again.Noop)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), u.Points) // 30 + first_supporter
}

func TestSetStatus_ConfirmAfterPendingDoesNotRewardAgain(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	res := donateAndConfirm(t, svc, "u1", 100)
	require.NotNil(t, res.Donation.RewardedAt)

	for i := 0; i < 3; i++ {
		_, err := svc.SetStatus(ctx, res.Donation.ID, donations.StatusPending)
		require.NoError(t, err)
		again, err := svc.SetStatus(ctx, res.Donation.ID, donations.StatusConfirmed)
		require.NoError(t, err)
		assert.False(t, again.Noop)
		assert.True(t, again.Rewards.Empty())
	}

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(110), u.Points) // 100 + first_supporter

	d, err := svc.GetByID(ctx, res.Donation.ID)
	require.NoError(t, err)
	assert.Equal(t, donations.StatusConfirmed, d.Status)
	assert.NotNil(t, d.RewardedAt)
}

func TestSetStatus_AnonymousDonationGrantsNothing(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, donations.CreateInput{Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	res, err := svc.SetStatus(ctx, d.ID, donations.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, res.Rewards.Empty())

	top, err := repo.TopUsers(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestSetStatus_ToggleOff(t *testing.T) {
	svc, repo, toggle := newService(t)
	ctx := context.Background()
	require.NoError(t, toggle.SetGamificationEnabled(ctx, false))

	res := donateAndConfirm(t, svc, "u1", 250)
	assert.True(t, res.Rewards.Empty())
	assert.Equal(t, donations.StatusConfirmed, res.Donation.Status)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), u.Points)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, donations.CreateInput{UserID: "u1", Amount: decimal.Zero})
	require.ErrorIs(t, err, donations.ErrInvalidInput)

	_, err = svc.Create(ctx, donations.CreateInput{UserID: "u1", Amount: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, donations.ErrInvalidInput)

	_, err = svc.SetStatus(ctx, "missing", donations.StatusConfirmed)
	require.ErrorIs(t, err, donations.ErrNotFound)
}
