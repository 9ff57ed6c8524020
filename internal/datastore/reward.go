package datastore

import (
	"context"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableRewardRule(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RewardRule)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTableRewardIntent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RewardIntent)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.RewardIntent)(nil)).Index("index_reward_intent_user").IfNotExists().Column("user_id").Exec(ctx)
	return err
}

// UpsertRewardRule replaces the rule for a level, mirroring the admin
// command's replace semantics.
func UpsertRewardRule(ctx context.Context, db bun.IDB, rule *models.RewardRule) error {
	_, err := db.NewInsert().Model(rule).
		On("CONFLICT (level) DO UPDATE SET reward_type = EXCLUDED.reward_type, reward_value = EXCLUDED.reward_value").
		Exec(ctx)
	return err
}

func GetRewardRuleByLevel(ctx context.Context, db bun.IDB, level int) (*models.RewardRule, error) {
	var rule models.RewardRule
	err := db.NewSelect().Model(&rule).Where("level = ?", level).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func ListRewardRules(ctx context.Context, db bun.IDB) ([]*models.RewardRule, error) {
	var rules []*models.RewardRule
	err := db.NewSelect().Model(&rules).Order("level ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func InsertRewardIntent(ctx context.Context, db bun.IDB, intent *models.RewardIntent) error {
	_, err := db.NewInsert().Model(intent).Exec(ctx)
	return err
}

func MarkIntentDelivered(ctx context.Context, db bun.IDB, intentID string) error {
	_, err := db.NewUpdate().Model((*models.RewardIntent)(nil)).
		Set("status = ?", models.INTENT_STATUS_DELIVERED).
		Where("id = ?", intentID).Exec(ctx)
	return err
}

// MarkIntentFailed records a collaborator delivery failure. Progression
// state already committed stays untouched.
func MarkIntentFailed(ctx context.Context, db bun.IDB, intentID, detail string) error {
	_, err := db.NewUpdate().Model((*models.RewardIntent)(nil)).
		Set("status = ?", models.INTENT_STATUS_FAILED).
		Set("detail = ?", detail).
		Where("id = ?", intentID).Exec(ctx)
	return err
}

func ListIntentsByUser(ctx context.Context, db bun.IDB, userID int64, limit int) ([]*models.RewardIntent, error) {
	var intents []*models.RewardIntent
	err := db.NewSelect().Model(&intents).
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return intents, nil
}
