package services

import (
	"context"
	"database/sql"
	"testing"

	"celestix/internal/datastore"
	"celestix/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// newTestContainer wires the service graph over an in-memory sqlite store
// and a process-local cache. The mutex pool points at a dead address, so
// only paths that return before locking can run against it.
func newTestContainer(t *testing.T) *do.Injector {
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
	require.NoError(t, datastore.CreateTableUser(ctx, db))
	require.NoError(t, datastore.CreateTableSeason(ctx, db))
	require.NoError(t, datastore.CreateTableConfig(ctx, db))

	injector := do.New()

	do.ProvideValue(injector, db)
	do.ProvideNamedValue(injector, "db-readonly", db)

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		return caching.NewCacheRedis(nil, true)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		return redsync.New(goredis.NewPool(client)), nil
	})

	do.Provide(injector, NewServiceConfig)
	do.Provide(injector, NewServiceSeason)
	do.Provide(injector, NewServiceProgression)

	return injector
}
