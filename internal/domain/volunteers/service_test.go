package volunteers_test

import (
	"context"
	"testing"

	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatus_ApprovedGrantsVolunteerHeartOnce(t *testing.T) {
	store := memory.NewStore()
	toggle := memory.NewToggle(false)
	svc := volunteers.NewService(memory.VolunteersTx(store), memory.NewVolunteersRepo(store), rewards.NewLedger(toggle, nil), nil, nil)
	repo := memory.NewRewardsRepo(store)
	ctx := context.Background()

	a, err := svc.Apply(ctx, "u1", "Ana", "Quiero ayudar los fines de semana")
	require.NoError(t, err)
	assert.Equal(t, volunteers.StatusPending, a.Status)

	// Aprobada con gamificación apagada: sin premio.
	res, err := svc.SetStatus(ctx, a.ID, volunteers.StatusApproved)
	require.NoError(t, err)
	assert.True(t, res.Rewards.Empty())

	// Re-aprobar con gamificación encendida otorga el logro (idempotente).
	require.NoError(t, toggle.SetGamificationEnabled(ctx, true))
	res, err = svc.SetStatus(ctx, a.ID, volunteers.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []rewards.AchievementCode{rewards.AchievementVolunteerHeart}, res.Rewards.Unlocked)
	assert.False(t, res.Noop)

	res, err = svc.SetStatus(ctx, a.ID, volunteers.StatusApproved)
	require.NoError(t, err)
	assert.True(t, res.Noop)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), u.Points)
}

func TestApply_Validation(t *testing.T) {
	store := memory.NewStore()
	svc := volunteers.NewService(memory.VolunteersTx(store), memory.NewVolunteersRepo(store), rewards.NewLedger(nil, nil), nil, nil)

	_, err := svc.Apply(context.Background(), "u1", "", "  ")
	require.ErrorIs(t, err, volunteers.ErrInvalidInput)

	_, err = svc.SetStatus(context.Background(), "missing", volunteers.StatusRejected)
	require.ErrorIs(t, err, volunteers.ErrNotFound)
}
