package services

import (
	"context"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/interfaces"
	"celestix/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	rs                 *redsync.Redsync
	limiter            interfaces.Limiter

	serviceSeason *ServiceSeason
	serviceConfig *ServiceConfig
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceSeason, err := do.Invoke[*ServiceSeason](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB, readonlyPostgresDB, rs, limiter, serviceSeason, serviceConfig}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := datastore.GetOrCreateUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}

// GetRank reports current level, prestige and the xp still needed for the
// next level, plus the season the numbers accrued in.
func (service *ServiceUser) GetRank(ctx context.Context, userID int64) (*models.RankInfo, error) {
	user, err := datastore.GetOrCreateUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	season, err := service.serviceSeason.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}

	threshold := user.Level * 100
	return &models.RankInfo{
		UserID:   user.ID,
		XP:       user.XP,
		Level:    user.Level,
		Prestige: user.Prestige,
		XPNeeded: threshold - user.XP,
		Progress: float64(user.XP) / float64(threshold),
		Season:   season,
	}, nil
}

// ClaimDaily credits the daily stipend once per 24h window. The window is
// measured from the previous claim, not from midnight.
func (service *ServiceUser) ClaimDaily(ctx context.Context, userID int64) (*models.User, error) {
	err := service.limiter.Allow(ctx, LimitKeyUserDaily(userID), redis_rate.PerMinute(CLAIM_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, err
	}

	amount, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_DAILY_COINS, DEFAULT_DAILY_COINS)

	mutex := service.rs.NewMutex(LockKeyUserDaily(userID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrDailyLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	if _, err := datastore.GetOrCreateUser(ctx, service.postgresDB, userID); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	claimed, err := datastore.ClaimDaily(ctx, service.postgresDB, userID, amount, now, now.Add(-DAILY_CLAIM_INTERVAL))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !claimed {
		return nil, errorx.Wrap(models.ErrAlreadyClaimed, errorx.Invalid)
	}

	user, err := datastore.GetUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}
