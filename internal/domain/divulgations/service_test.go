package divulgations_test

import (
	"context"
	"testing"

	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatus_OnlyTransitionIntoReviewedRewards(t *testing.T) {
	store := memory.NewStore()
	toggle := memory.NewToggle(true)
	svc := divulgations.NewService(memory.DivulgationsTx(store), memory.NewDivulgationsRepo(store), rewards.NewLedger(toggle, nil), nil, nil)
	repo := memory.NewRewardsRepo(store)
	ctx := context.Background()

	d, err := svc.Submit(ctx, divulgations.SubmitInput{UserID: "u1", Title: "Gata perdida en el centro"})
	require.NoError(t, err)

	res, err := svc.SetStatus(ctx, d.ID, divulgations.StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, []rewards.AchievementCode{rewards.AchievementVoiceForTheVoiceless}, res.Rewards.Unlocked)

	res, err = svc.SetStatus(ctx, d.ID, divulgations.StatusReviewed)
	require.NoError(t, err)
	assert.True(t, res.Noop)

	// Una segunda divulgación revisada no vuelve a otorgar el logro.
	d2, err := svc.Submit(ctx, divulgations.SubmitInput{UserID: "u1", Title: "Perro en adopción"})
	require.NoError(t, err)
	res, err = svc.SetStatus(ctx, d2.ID, divulgations.StatusReviewed)
	require.NoError(t, err)
	assert.True(t, res.Rewards.Empty())

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), u.Points)

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 2)
}

func TestSubmit_Validation(t *testing.T) {
	store := memory.NewStore()
	svc := divulgations.NewService(memory.DivulgationsTx(store), memory.NewDivulgationsRepo(store), rewards.NewLedger(nil, nil), nil, nil)

	_, err := svc.Submit(context.Background(), divulgations.SubmitInput{UserID: "u1", Title: " "})
	require.ErrorIs(t, err, divulgations.ErrInvalidInput)
}
