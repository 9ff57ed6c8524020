package datastore

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertActiveSeasonSingleActive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)

	ok, err := InsertActiveSeason(ctx, db, start, end)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second start must hit the guard.
	ok, err = InsertActiveSeason(ctx, db, start, end)
	require.NoError(t, err)
	assert.False(t, ok)

	season, err := GetActiveSeason(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, models.SEASON_STATUS_ACTIVE, season.Status)
}

func TestTransitionSeason(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Pause without an active season fails.
	ok, err := TransitionSeason(ctx, db, models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED)
	require.NoError(t, err)
	assert.False(t, ok)

	start := time.Now()
	_, err = InsertActiveSeason(ctx, db, start, start.Add(time.Hour))
	require.NoError(t, err)

	ok, err = TransitionSeason(ctx, db, models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED)
	require.NoError(t, err)
	assert.True(t, ok)

	// Pausing twice fails, resuming succeeds.
	ok, err = TransitionSeason(ctx, db, models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = TransitionSeason(ctx, db, models.SEASON_STATUS_PAUSED, models.SEASON_STATUS_ACTIVE)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEndCurrentSeason(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	start := time.Now()
	_, err := InsertActiveSeason(ctx, db, start, start.Add(30*24*time.Hour))
	require.NoError(t, err)

	// Ending works from paused too.
	ok, err := TransitionSeason(ctx, db, models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED)
	require.NoError(t, err)
	require.True(t, ok)

	endedAt := time.Now()
	ok, err = EndCurrentSeason(ctx, db, endedAt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EndCurrentSeason(ctx, db, endedAt)
	require.NoError(t, err)
	assert.False(t, ok)

	// A new season can start after the old one ended.
	ok, err = InsertActiveSeason(ctx, db, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExpireActiveSeason(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	start := time.Now().Add(-2 * time.Hour)
	_, err := InsertActiveSeason(ctx, db, start, start.Add(time.Hour))
	require.NoError(t, err)

	// Tick before the end date does nothing.
	expired, err := ExpireActiveSeason(ctx, db, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.False(t, expired)

	expired, err = ExpireActiveSeason(ctx, db, time.Now())
	require.NoError(t, err)
	assert.True(t, expired)

	has, err := HasActiveSeason(ctx, db)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasActiveSeason(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	has, err := HasActiveSeason(ctx, db)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = InsertActiveSeason(ctx, db, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	has, err = HasActiveSeason(ctx, db)
	require.NoError(t, err)
	assert.True(t, has)
}
