package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := GetOrCreateUser(ctx, db, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.XP)
	assert.Equal(t, 0, user.Coins)

	// Second call finds the same row instead of resetting it.
	user.XP = 50
	require.NoError(t, UpdateUserProgress(ctx, db, user))

	again, err := GetOrCreateUser(ctx, db, 42)
	require.NoError(t, err)
	assert.Equal(t, 50, again.XP)
}

func TestSpendCoins(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := GetOrCreateUser(ctx, db, 1)
	require.NoError(t, err)
	require.NoError(t, AddCoins(ctx, db, 1, 100))

	ok, err := SpendCoins(ctx, db, 1, 60)
	require.NoError(t, err)
	assert.True(t, ok)

	// 40 left, the second spend must lose.
	ok, err = SpendCoins(ctx, db, 1, 60)
	require.NoError(t, err)
	assert.False(t, ok)

	user, err := GetUserByID(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 40, user.Coins)
}

func TestSpendCoinsExactBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := GetOrCreateUser(ctx, db, 1)
	require.NoError(t, err)
	require.NoError(t, AddCoins(ctx, db, 1, 50))

	ok, err := SpendCoins(ctx, db, 1, 50)
	require.NoError(t, err)
	assert.True(t, ok)

	user, err := GetUserByID(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Coins)
}

func TestClaimDaily(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := GetOrCreateUser(ctx, db, 7)
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	claimed, err := ClaimDaily(ctx, db, 7, 100, now, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed)

	// 23h later the window has not elapsed.
	later := now.Add(23 * time.Hour)
	claimed, err = ClaimDaily(ctx, db, 7, 100, later, later.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed)

	// 25h later it has.
	later = now.Add(25 * time.Hour)
	claimed, err = ClaimDaily(ctx, db, 7, 100, later, later.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed)

	user, err := GetUserByID(ctx, db, 7)
	require.NoError(t, err)
	assert.Equal(t, 200, user.Coins)
}

func TestPrestigeReset(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := GetOrCreateUser(ctx, db, 3)
	require.NoError(t, err)

	user.Level = 54
	user.XP = 10
	require.NoError(t, UpdateUserProgress(ctx, db, user))

	ok, err := PrestigeReset(ctx, db, 3, 55)
	require.NoError(t, err)
	assert.False(t, ok)

	user.Level = 55
	require.NoError(t, UpdateUserProgress(ctx, db, user))

	ok, err = PrestigeReset(ctx, db, 3, 55)
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := GetUserByID(ctx, db, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Level)
	assert.Equal(t, 0, after.XP)
	assert.Equal(t, 1, after.Prestige)

	// The guard holds again right after the reset.
	ok, err = PrestigeReset(ctx, db, 3, 55)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetTopUsersOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []struct {
		id       int64
		level    int
		prestige int
		xp       int
	}{
		{1, 10, 0, 50},
		{2, 10, 2, 0},
		{3, 12, 0, 0},
		{4, 10, 0, 80},
	}
	for _, s := range seed {
		user, err := GetOrCreateUser(ctx, db, s.id)
		require.NoError(t, err)
		user.Level = s.level
		user.Prestige = s.prestige
		user.XP = s.xp
		require.NoError(t, UpdateUserProgress(ctx, db, user))
	}

	users, err := GetTopUsers(ctx, db, 3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, int64(3), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
	assert.Equal(t, int64(4), users[2].ID)
}
