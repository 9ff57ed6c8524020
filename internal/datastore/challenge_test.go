package datastore

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func seedChallenge(t *testing.T, ctx context.Context, db *bun.DB, threshold int) *models.WeeklyChallenge {
	t.Helper()
	challenge := &models.WeeklyChallenge{
		Name:      "Chatterbox",
		Category:  models.ACTIVITY_MESSAGE,
		Threshold: threshold,
		Reward:    "500 coins",
		CreatedAt: time.Now(),
	}
	require.NoError(t, InsertChallenge(ctx, db, challenge))
	return challenge
}

func TestIncrementChallengeProgress(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	challenge := seedChallenge(t, ctx, db, 3)

	row, err := IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Progress)
	assert.False(t, row.Completed)

	row, err = IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Progress)
}

func TestLatchChallengeCompletion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	challenge := seedChallenge(t, ctx, db, 2)

	_, err := IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)

	// Below the threshold the latch does not set.
	latched, err := LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	assert.False(t, latched)

	_, err = IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)

	latched, err = LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	assert.True(t, latched)

	// The latch fires once.
	latched, err = LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	assert.False(t, latched)
}

func TestIncrementFrozenAfterCompletion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	challenge := seedChallenge(t, ctx, db, 1)

	_, err := IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)

	latched, err := LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	require.True(t, latched)

	// Further activity must not move the counter.
	row, err := IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Progress)
	assert.True(t, row.Completed)
}

func TestResetWeeklyProgress(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	challenge := seedChallenge(t, ctx, db, 1)

	for _, userID := range []int64{1, 2} {
		_, err := IncrementChallengeProgress(ctx, db, userID, challenge.ID)
		require.NoError(t, err)
	}
	latched, err := LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	require.True(t, latched)

	affected, err := ResetWeeklyProgress(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	rows, err := GetUserChallengeProgress(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Progress)
	assert.False(t, rows[0].Completed)
	assert.Nil(t, rows[0].CompletedAt)

	// The cleared latch can fire again next week.
	_, err = IncrementChallengeProgress(ctx, db, 1, challenge.ID)
	require.NoError(t, err)
	latched, err = LatchChallengeCompletion(ctx, db, 1, challenge.ID, challenge.Threshold, time.Now())
	require.NoError(t, err)
	assert.True(t, latched)
}
