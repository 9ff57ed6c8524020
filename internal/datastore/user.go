package datastore

import (
	"context"
	"time"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_level").IfNotExists().Column("level", "prestige").Exec(ctx)
	return err
}

func GetUserByID(ctx context.Context, db bun.IDB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser lazily creates the row on first activity, xp 0 level 1.
func GetOrCreateUser(ctx context.Context, db bun.IDB, userID int64) (*models.User, error) {
	user := &models.User{
		ID:        userID,
		XP:        0,
		Level:     1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := db.NewInsert().Model(user).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return GetUserByID(ctx, db, userID)
}

func UpdateUserProgress(ctx context.Context, db bun.IDB, user *models.User) error {
	_, err := db.NewUpdate().Model(user).
		Set("xp = ?", user.XP).
		Set("level = ?", user.Level).
		Set("prestige = ?", user.Prestige).
		Set("updated_at = current_timestamp").
		WherePK().Exec(ctx)
	return err
}

func AddCoins(ctx context.Context, db bun.IDB, userID int64, amount int) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("coins = coins + ?", amount).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).Exec(ctx)
	return err
}

// SpendCoins decrements the balance only when it covers the price, as a
// single conditional update. Returns false when the guard did not match,
// which covers both a short balance and a lost race.
func SpendCoins(ctx context.Context, db bun.IDB, userID int64, price int) (bool, error) {
	res, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("coins = coins - ?", price).
		Set("updated_at = current_timestamp").
		Where("id = ? AND coins >= ?", userID, price).
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

// ClaimDaily credits the daily amount and stamps last_daily_claim in one
// conditional update. Concurrent claims from the same user resolve to
// exactly one matching row.
func ClaimDaily(ctx context.Context, db bun.IDB, userID int64, amount int, now, cutoff time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("coins = coins + ?", amount).
		Set("last_daily_claim = ?", now).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Where("last_daily_claim IS NULL OR last_daily_claim <= ?", cutoff).
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

// PrestigeReset folds a level run into a prestige point: level back to 1,
// xp to 0, prestige up by one, guarded on the ceiling so two concurrent
// prestige calls cannot both win.
func PrestigeReset(ctx context.Context, db bun.IDB, userID int64, ceiling int) (bool, error) {
	res, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("level = 1").
		Set("xp = 0").
		Set("prestige = prestige + 1").
		Set("updated_at = current_timestamp").
		Where("id = ? AND level >= ?", userID, ceiling).
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

func GetTopUsers(ctx context.Context, db bun.IDB, limit int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		OrderExpr("level DESC, prestige DESC, xp DESC").
		Limit(limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func GetUsersByLimit(ctx context.Context, db bun.IDB, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		Order("id ASC").
		Limit(limit).Offset(offset).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}
