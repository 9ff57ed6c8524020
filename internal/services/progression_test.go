package services

import (
	"context"
	"testing"
	"time"

	"celestix/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestAdvance(t *testing.T) {
	cases := []struct {
		name      string
		xp        int
		level     int
		wantXP    int
		wantLevel int
		leveled   bool
	}{
		{"below threshold", 99, 1, 99, 1, false},
		{"exact threshold", 100, 1, 0, 2, true},
		{"carries leftover", 120, 1, 20, 2, true},
		{"multi level jump", 100 + 200 + 5, 1, 5, 3, true},
		{"higher level threshold", 499, 5, 499, 5, false},
		{"higher level crossing", 500, 5, 0, 6, true},
		{"zero increment", 0, 1, 0, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			xp, level, leveled := advance(tc.xp, tc.level)
			assert.Equal(t, tc.wantXP, xp)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.leveled, leveled)
		})
	}
}

func TestAccrueWithoutActiveSeason(t *testing.T) {
	ctx := context.Background()
	injector := newTestContainer(t)

	serviceProgression, err := do.Invoke[*ServiceProgression](injector)
	require.NoError(t, err)

	result, user, err := serviceProgression.Accrue(ctx, 42, 25)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Nil(t, user)

	// The gated path must not even create the user row.
	db, err := do.Invoke[*bun.DB](injector)
	require.NoError(t, err)
	count, err := db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAccrueWhileSeasonPaused(t *testing.T) {
	ctx := context.Background()
	injector := newTestContainer(t)

	serviceSeason, err := do.Invoke[*ServiceSeason](injector)
	require.NoError(t, err)

	_, err = serviceSeason.StartSeason(ctx, time.Now(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, serviceSeason.PauseSeason(ctx))

	serviceProgression, err := do.Invoke[*ServiceProgression](injector)
	require.NoError(t, err)

	result, user, err := serviceProgression.Accrue(ctx, 42, 25)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Nil(t, user)
}
