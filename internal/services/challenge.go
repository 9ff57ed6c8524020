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

type ServiceChallenge struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
}

func NewServiceChallenge(container *do.Injector) (*ServiceChallenge, error) {
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

	return &ServiceChallenge{container, postgresDB, readonlyPostgresDB, cache}, nil
}

func (service *ServiceChallenge) AddChallenge(ctx context.Context, name, description string, category models.ActivityKind, threshold int, reward string) (*models.WeeklyChallenge, error) {
	if !category.Valid() {
		return nil, errorx.Wrap(errInvalidCategory, errorx.Validation)
	}
	if threshold <= 0 {
		return nil, errorx.Wrap(errInvalidThreshold, errorx.Validation)
	}

	challenge := &models.WeeklyChallenge{
		Name:        name,
		Description: description,
		Category:    category,
		Threshold:   threshold,
		Reward:      reward,
		CreatedAt:   time.Now(),
	}

	if err := datastore.InsertChallenge(ctx, service.postgresDB, challenge); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyChallengesByCategory(string(category)))

	return challenge, nil
}

// Track advances the week's counters for every challenge in the activity's
// category. The latch decides whether a completion signal fires; counters on
// completed challenges stay frozen until the weekly reset.
func (service *ServiceChallenge) Track(ctx context.Context, userID int64, kind models.ActivityKind) ([]models.ChallengeCompleted, error) {
	challenges, err := service.challengesByCategory(ctx, kind)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if len(challenges) == 0 {
		return nil, nil
	}

	var completions []models.ChallengeCompleted
	for _, challenge := range challenges {
		row, err := datastore.IncrementChallengeProgress(ctx, service.postgresDB, userID, challenge.ID)
		if err != nil {
			return completions, errorx.Wrap(err, errorx.Service)
		}
		if row.Completed || row.Progress < challenge.Threshold {
			continue
		}

		latched, err := datastore.LatchChallengeCompletion(ctx, service.postgresDB, userID, challenge.ID, challenge.Threshold, time.Now())
		if err != nil {
			return completions, errorx.Wrap(err, errorx.Service)
		}
		if latched {
			completions = append(completions, models.ChallengeCompleted{
				UserID:    userID,
				Challenge: challenge,
			})
		}
	}

	return completions, nil
}

// GetWeeklyChallenges joins the catalog with the user's counters, showing
// zero progress for challenges the user has not touched this week.
func (service *ServiceChallenge) GetWeeklyChallenges(ctx context.Context, userID int64) ([]*models.UserChallengeProgress, error) {
	challenges, err := datastore.ListChallenges(ctx, service.readonlyPostgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	rows, err := datastore.GetUserChallengeProgress(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	byChallenge := make(map[int64]*models.UserChallengeProgress, len(rows))
	for _, row := range rows {
		byChallenge[row.ChallengeID] = row
	}

	result := make([]*models.UserChallengeProgress, 0, len(challenges))
	for _, challenge := range challenges {
		row, ok := byChallenge[challenge.ID]
		if !ok {
			row = &models.UserChallengeProgress{
				UserID:      userID,
				ChallengeID: challenge.ID,
			}
		}
		row.Challenge = challenge
		result = append(result, row)
	}

	return result, nil
}

func (service *ServiceChallenge) ResetWeekly(ctx context.Context) (int64, error) {
	affected, err := datastore.ResetWeeklyProgress(ctx, service.postgresDB)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}
	return affected, nil
}

func (service *ServiceChallenge) challengesByCategory(ctx context.Context, kind models.ActivityKind) ([]*models.WeeklyChallenge, error) {
	callback := func() ([]*models.WeeklyChallenge, error) {
		return datastore.ListChallengesByCategory(ctx, service.readonlyPostgresDB, kind)
	}

	return caching.UseCache(ctx, service.cache, DBKeyChallengesByCategory(string(kind)), CACHE_TTL_1_MIN, callback)
}
