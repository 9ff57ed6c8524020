package datastore

import (
	"context"
	"database/sql"
	"time"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableSeason(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Season)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// Write-time guarantee for the single-active-season invariant; the
	// conditional inserts/updates below rely on it under concurrency.
	_, err = db.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS index_season_single_active ON season (status) WHERE status = 'active'`)
	return err
}

func GetActiveSeason(ctx context.Context, db bun.IDB) (*models.Season, error) {
	var season models.Season
	err := db.NewSelect().Model(&season).Where("status = ?", models.SEASON_STATUS_ACTIVE).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func GetLatestSeason(ctx context.Context, db bun.IDB) (*models.Season, error) {
	var season models.Season
	err := db.NewSelect().Model(&season).Order("id DESC").Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func GetCurrentSeason(ctx context.Context, db bun.IDB) (*models.Season, error) {
	var season models.Season
	err := db.NewSelect().Model(&season).
		Where("status IN (?, ?)", models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED).
		Order("id DESC").Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// InsertActiveSeason creates a new active season only when none is active.
// Returns false when the guard found an active one.
func InsertActiveSeason(ctx context.Context, db bun.IDB, start, end time.Time) (bool, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO season (start_date, end_date, status, created_at, updated_at)
		SELECT ?, ?, 'active', current_timestamp, current_timestamp
		WHERE NOT EXISTS (SELECT 1 FROM season WHERE status = 'active')`,
		start, end)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// TransitionSeason flips status with the previous status as the guard, so
// the manual commands and the expiry tick never race each other.
func TransitionSeason(ctx context.Context, db bun.IDB, from, to string) (bool, error) {
	if !models.ValidSeasonTransition(from, to) {
		return false, nil
	}

	res, err := db.NewUpdate().Model((*models.Season)(nil)).
		Set("status = ?", to).
		Set("updated_at = current_timestamp").
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// EndCurrentSeason closes out an active or paused season, stamping the end
// date with the moment the command arrived.
func EndCurrentSeason(ctx context.Context, db bun.IDB, now time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.Season)(nil)).
		Set("status = ?", models.SEASON_STATUS_ENDED).
		Set("end_date = ?", now).
		Set("updated_at = current_timestamp").
		Where("status IN (?, ?)", models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ExpireActiveSeason is the hourly tick: an active season past its end date
// moves to ended without touching end_date.
func ExpireActiveSeason(ctx context.Context, db bun.IDB, now time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.Season)(nil)).
		Set("status = ?", models.SEASON_STATUS_ENDED).
		Set("updated_at = current_timestamp").
		Where("status = ?", models.SEASON_STATUS_ACTIVE).
		Where("end_date <= ?", now).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func HasActiveSeason(ctx context.Context, db bun.IDB) (bool, error) {
	exists, err := db.NewSelect().Model((*models.Season)(nil)).
		Where("status = ?", models.SEASON_STATUS_ACTIVE).
		Exists(ctx)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return exists, nil
}
