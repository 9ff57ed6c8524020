package datastore

import (
	"context"
	"time"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableWeeklyChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.WeeklyChallenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.UserChallengeProgress)(nil)).IfNotExists().Exec(ctx)
	return err
}

func InsertChallenge(ctx context.Context, db bun.IDB, challenge *models.WeeklyChallenge) error {
	_, err := db.NewInsert().Model(challenge).Exec(ctx)
	return err
}

func ListChallenges(ctx context.Context, db bun.IDB) ([]*models.WeeklyChallenge, error) {
	var challenges []*models.WeeklyChallenge
	err := db.NewSelect().Model(&challenges).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func ListChallengesByCategory(ctx context.Context, db bun.IDB, category models.ActivityKind) ([]*models.WeeklyChallenge, error) {
	var challenges []*models.WeeklyChallenge
	err := db.NewSelect().Model(&challenges).Where("category = ?", category).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func GetUserChallengeProgress(ctx context.Context, db bun.IDB, userID int64) ([]*models.UserChallengeProgress, error) {
	var rows []*models.UserChallengeProgress
	err := db.NewSelect().Model(&rows).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementChallengeProgress bumps the counter by one unless completion is
// already latched, creating the row at zero first when absent. Returns the
// row after the increment.
func IncrementChallengeProgress(ctx context.Context, db bun.IDB, userID, challengeID int64) (*models.UserChallengeProgress, error) {
	seed := &models.UserChallengeProgress{UserID: userID, ChallengeID: challengeID}
	_, err := db.NewInsert().Model(seed).
		On("CONFLICT (user_id, challenge_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	_, err = db.NewUpdate().Model((*models.UserChallengeProgress)(nil)).
		Set("progress = progress + 1").
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Where("completed = ?", false).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	var row models.UserChallengeProgress
	err = db.NewSelect().Model(&row).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// LatchChallengeCompletion marks completion once progress covers the
// threshold. Zero affected rows means the latch was already set, so the
// completion signal must not fire again.
func LatchChallengeCompletion(ctx context.Context, db bun.IDB, userID, challengeID int64, threshold int, now time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.UserChallengeProgress)(nil)).
		Set("completed = ?", true).
		Set("completed_at = ?", now).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Where("completed = ?", false).
		Where("progress >= ?", threshold).
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

// ResetWeeklyProgress zeroes every counter and clears the latches at the
// epoch boundary. Scheduled, never event-driven.
func ResetWeeklyProgress(ctx context.Context, db bun.IDB) (int64, error) {
	res, err := db.NewUpdate().Model((*models.UserChallengeProgress)(nil)).
		Set("progress = ?", 0).
		Set("completed = ?", false).
		Set("completed_at = NULL").
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
