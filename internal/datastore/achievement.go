package datastore

import (
	"context"
	"time"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAchievement(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Achievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.UserAchievement)(nil)).IfNotExists().Exec(ctx)
	return err
}

func InsertAchievement(ctx context.Context, db bun.IDB, achievement *models.Achievement) error {
	_, err := db.NewInsert().Model(achievement).Exec(ctx)
	return err
}

func ListAchievements(ctx context.Context, db bun.IDB) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := db.NewSelect().Model(&achievements).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func GetUserAchievements(ctx context.Context, db bun.IDB, userID int64) ([]*models.UserAchievement, error) {
	var rows []*models.UserAchievement
	err := db.NewSelect().Model(&rows).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CompleteUserAchievement latches completion. The DO UPDATE guard makes the
// upsert idempotent: a row already completed matches nothing and the caller
// sees zero affected rows, so no duplicate unlock is emitted.
func CompleteUserAchievement(ctx context.Context, db bun.IDB, userID, achievementID int64, now time.Time) (bool, error) {
	row := &models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		Completed:     true,
		CompletedAt:   &now,
	}

	res, err := db.NewInsert().Model(row).
		On("CONFLICT (user_id, achievement_id) DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at WHERE user_achievement.completed = false").
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
