package rewards_test

import (
	"context"
	"testing"

	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/domain/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(toggle *memory.Toggle) (*rewards.Service, *memory.Store) {
	store := memory.NewStore()
	ledger := rewards.NewLedger(toggle, nil)
	return rewards.NewService(memory.RewardsTx(store), memory.NewRewardsRepo(store), ledger, nil, nil), store
}

func TestClaimDailyLogin_OncePerDay(t *testing.T) {
	svc, _ := newService(memory.NewToggle(true))
	ctx := context.Background()

	first, err := svc.ClaimDailyLogin(ctx, "u1", "Ana")
	require.NoError(t, err)
	assert.True(t, first.Rewarded)
	assert.Equal(t, rewards.DailyLoginPoints, first.User.Points)

	second, err := svc.ClaimDailyLogin(ctx, "u1", "Ana")
	require.NoError(t, err)
	assert.False(t, second.Rewarded)
	assert.Equal(t, rewards.DailyLoginPoints, second.User.Points)
}

func TestClaimDailyLogin_ToggleOffIsNoop(t *testing.T) {
	svc, _ := newService(memory.NewToggle(false))

	res, err := svc.ClaimDailyLogin(context.Background(), "u1", "Ana")
	require.NoError(t, err)
	assert.False(t, res.Rewarded)
	assert.Equal(t, int64(0), res.User.Points)
}

func TestRankingAndReset(t *testing.T) {
	svc, _ := newService(memory.NewToggle(true))
	ctx := context.Background()

	_, err := svc.ClaimDailyLogin(ctx, "u1", "Ana")
	require.NoError(t, err)
	_, err = svc.ClaimDailyLogin(ctx, "u2", "Beto")
	require.NoError(t, err)

	top, err := svc.Ranking(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)

	n, err := svc.ResetRanking(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	top, err = svc.Ranking(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, top)

	// Una segunda pasada no encuentra nada para resetear.
	n, err = svc.ResetRanking(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestProfileAndCatalog(t *testing.T) {
	svc, _ := newService(memory.NewToggle(true))
	ctx := context.Background()

	_, err := svc.Profile(ctx, "ghost")
	require.ErrorIs(t, err, rewards.ErrNotFound)

	items, err := svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(rewards.DefaultCatalog()))
}
