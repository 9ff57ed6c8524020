package datastore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// In-memory sqlite is per connection.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		//nolint:errcheck
		db.Close()
	})

	ctx := context.Background()
	require.NoError(t, CreateTableUser(ctx, db))
	require.NoError(t, CreateTableSeason(ctx, db))
	require.NoError(t, CreateTableAchievement(ctx, db))
	require.NoError(t, CreateTableWeeklyChallenge(ctx, db))
	require.NoError(t, CreateTableRewardRule(ctx, db))
	require.NoError(t, CreateTableRewardIntent(ctx, db))
	require.NoError(t, CreateTableShopItem(ctx, db))
	require.NoError(t, CreateTableEvent(ctx, db))
	require.NoError(t, CreateTableConfig(ctx, db))

	return db
}
