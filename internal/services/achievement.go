package services

import (
	"context"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/models"
	"celestix/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceAchievement evaluates structured achievement conditions against
// user snapshots. Completion is a monotonic latch: the conditional upsert
// in the store decides whether an unlock signal fires, re-evaluation of a
// completed achievement is a no-op.
type ServiceAchievement struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
}

func NewServiceAchievement(container *do.Injector) (*ServiceAchievement, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAchievement{container, postgresDB, readonlyPostgresDB, cache}, nil
}

// AddAchievement rejects a malformed condition here, at definition time.
// Nothing unparseable is ever stored, so evaluation never sees free text.
func (service *ServiceAchievement) AddAchievement(ctx context.Context, name, description, conditionInput, reward string) (*models.Achievement, error) {
	condition, err := models.ParseCondition(conditionInput)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	achievement := &models.Achievement{
		Name:        name,
		Description: description,
		Condition:   condition,
		Reward:      reward,
		CreatedAt:   time.Now(),
	}

	if err := datastore.InsertAchievement(ctx, service.postgresDB, achievement); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAchievementCatalog())

	return achievement, nil
}

// Evaluate checks every achievement the user has not completed yet against
// the snapshot and latches the satisfied ones.
func (service *ServiceAchievement) Evaluate(ctx context.Context, user *models.User) ([]models.AchievementUnlocked, error) {
	achievements, err := service.catalog(ctx)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if len(achievements) == 0 {
		return nil, nil
	}

	rows, err := datastore.GetUserAchievements(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	completed := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			completed[row.AchievementID] = true
		}
	}

	snapshot := user.Snapshot()
	var unlocked []models.AchievementUnlocked

	for _, achievement := range achievements {
		if completed[achievement.ID] {
			continue
		}
		if achievement.Condition.Validate() != nil {
			continue
		}
		if !achievement.Condition.Eval(snapshot) {
			continue
		}

		latched, err := datastore.CompleteUserAchievement(ctx, service.postgresDB, user.ID, achievement.ID, time.Now())
		if err != nil {
			return unlocked, errorx.Wrap(err, errorx.Service)
		}
		if latched {
			unlocked = append(unlocked, models.AchievementUnlocked{
				UserID:      user.ID,
				Achievement: achievement,
			})
		}
	}

	return unlocked, nil
}

func (service *ServiceAchievement) GetAchievements(ctx context.Context, userID int64) (*models.AchievementOverview, error) {
	achievements, err := service.catalog(ctx)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	rows, err := datastore.GetUserAchievements(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	completed := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			completed[row.AchievementID] = true
		}
	}

	overview := &models.AchievementOverview{
		Completed: []*models.Achievement{},
		Open:      []*models.Achievement{},
	}
	for _, achievement := range achievements {
		if completed[achievement.ID] {
			overview.Completed = append(overview.Completed, achievement)
		} else {
			overview.Open = append(overview.Open, achievement)
		}
	}

	return overview, nil
}

func (service *ServiceAchievement) catalog(ctx context.Context) ([]*models.Achievement, error) {
	callback := func() ([]*models.Achievement, error) {
		return datastore.ListAchievements(ctx, service.readonlyPostgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyAchievementCatalog(), CACHE_TTL_5_MINS, callback)
}
