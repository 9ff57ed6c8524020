package datastore

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopItemLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	roleRef := int64(777)
	item := &models.ShopItem{Name: "VIP role", Price: 1000, RoleRef: &roleRef, CreatedAt: time.Now()}
	require.NoError(t, InsertShopItem(ctx, db, item))
	require.NotZero(t, item.ID)

	items, err := ListShopItems(ctx, db)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].RoleRef)
	assert.Equal(t, roleRef, *items[0].RoleRef)

	ok, err := DeleteShopItem(ctx, db, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Deleting a missing item reports false, not an error.
	ok, err = DeleteShopItem(ctx, db, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfigUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, UpsertConfig(ctx, db, &models.Config{Key: "DAILY_COINS", Value: "100"}))
	require.NoError(t, UpsertConfig(ctx, db, &models.Config{Key: "DAILY_COINS", Value: "150"}))

	config, err := GetConfigByKey(ctx, db, "DAILY_COINS")
	require.NoError(t, err)
	assert.Equal(t, "150", config.Value)
}
