package datastore

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndListAchievements(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	condition, err := models.ParseCondition("level >= 25")
	require.NoError(t, err)

	achievement := &models.Achievement{
		Name:      "Veteran",
		Condition: condition,
		Reward:    "Veteran badge",
		CreatedAt: time.Now(),
	}
	require.NoError(t, InsertAchievement(ctx, db, achievement))
	require.NotZero(t, achievement.ID)

	achievements, err := ListAchievements(ctx, db)
	require.NoError(t, err)
	require.Len(t, achievements, 1)

	// The condition survives the round trip through the jsonb column.
	require.NotNil(t, achievements[0].Condition)
	assert.Equal(t, "level >= 25", achievements[0].Condition.String())
	assert.True(t, achievements[0].Condition.Eval(map[string]int64{"level": 25}))
}

func TestCompleteUserAchievementLatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	condition, err := models.ParseCondition("coins >= 1")
	require.NoError(t, err)
	achievement := &models.Achievement{Name: "First coin", Condition: condition, CreatedAt: time.Now()}
	require.NoError(t, InsertAchievement(ctx, db, achievement))

	latched, err := CompleteUserAchievement(ctx, db, 1, achievement.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, latched)

	// Re-evaluation after completion is a no-op.
	latched, err = CompleteUserAchievement(ctx, db, 1, achievement.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, latched)

	rows, err := GetUserAchievements(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
	assert.NotNil(t, rows[0].CompletedAt)
}
