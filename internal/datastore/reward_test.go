package datastore

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertRewardRule(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rule := &models.RewardRule{Level: 10, RewardType: models.REWARD_TYPE_ROLE, RewardValue: "555"}
	require.NoError(t, UpsertRewardRule(ctx, db, rule))

	// Re-adding the same level replaces the rule.
	replacement := &models.RewardRule{Level: 10, RewardType: models.REWARD_TYPE_COINS, RewardValue: "250"}
	require.NoError(t, UpsertRewardRule(ctx, db, replacement))

	stored, err := GetRewardRuleByLevel(ctx, db, 10)
	require.NoError(t, err)
	assert.Equal(t, models.REWARD_TYPE_COINS, stored.RewardType)
	assert.Equal(t, "250", stored.RewardValue)

	rules, err := ListRewardRules(ctx, db)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestRewardIntentStatusFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	intent := &models.RewardIntent{
		ID:        uuid.NewString(),
		UserID:    1,
		GuildID:   9,
		Kind:      models.INTENT_GRANT_ROLE,
		Value:     "555",
		Source:    "level_up",
		Status:    models.INTENT_STATUS_PENDING,
		CreatedAt: time.Now(),
	}
	require.NoError(t, InsertRewardIntent(ctx, db, intent))

	require.NoError(t, MarkIntentFailed(ctx, db, intent.ID, "queue unreachable"))

	intents, err := ListIntentsByUser(ctx, db, 1, 10)
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, models.INTENT_STATUS_FAILED, intents[0].Status)
	assert.Equal(t, "queue unreachable", intents[0].Detail)

	require.NoError(t, MarkIntentDelivered(ctx, db, intent.ID))

	intents, err = ListIntentsByUser(ctx, db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, models.INTENT_STATUS_DELIVERED, intents[0].Status)
}
