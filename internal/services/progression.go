package services

import (
	"context"
	"database/sql"

	"celestix/internal/datastore"
	"celestix/internal/models"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceProgression is the XP and leveling state machine. All writes to a
// user's progression row happen under that user's redsync mutex and inside
// one transaction, so concurrent events for the same user are linearized.
type ServiceProgression struct {
	container  *do.Injector
	postgresDB *bun.DB
	rs         *redsync.Redsync

	serviceSeason *ServiceSeason
	serviceConfig *ServiceConfig
}

func NewServiceProgression(container *do.Injector) (*ServiceProgression, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
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

	return &ServiceProgression{container, postgresDB, rs, serviceSeason, serviceConfig}, nil
}

// Accrue adds increment to the user's xp and walks the level thresholds.
// Returns an unapplied result when no season is active. The threshold loop
// handles an increment spanning several levels in one event.
func (service *ServiceProgression) Accrue(ctx context.Context, userID int64, increment int) (*models.AccrualResult, *models.User, error) {
	allowed, err := service.serviceSeason.IsAccrualAllowed(ctx)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}
	if !allowed {
		return &models.AccrualResult{Applied: false}, nil, nil
	}

	mutex := service.rs.NewMutex(LockKeyUserProgress(userID))
	if err := mutex.Lock(); err != nil {
		return nil, nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	var user *models.User
	result := &models.AccrualResult{Applied: true}

	err = service.postgresDB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user, err = datastore.GetOrCreateUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		xp, level, leveled := advance(user.XP+increment, user.Level)
		user.XP = xp
		user.Level = level
		result.LeveledUp = leveled
		result.NewLevel = level
		result.LeftoverXP = xp

		return datastore.UpdateUserProgress(ctx, tx, user)
	})
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	return result, user, nil
}

// Prestige resets the run once the ceiling is reached. The conditional
// update decides; two concurrent calls cannot both pass the guard.
func (service *ServiceProgression) Prestige(ctx context.Context, userID int64) (*models.User, error) {
	ceiling, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_PRESTIGE_CEILING, DEFAULT_PRESTIGE_CEILING)

	mutex := service.rs.NewMutex(LockKeyUserProgress(userID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	ok, err := datastore.PrestigeReset(ctx, service.postgresDB, userID, ceiling)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return nil, errorx.Wrap(models.ErrPrestigeTooEarly, errorx.Invalid)
	}

	user, err := datastore.GetUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}

// advance walks xp through the level*100 thresholds until the remainder is
// below the next one.
func advance(xp, level int) (int, int, bool) {
	leveled := false
	for threshold := level * 100; xp >= threshold; threshold = level * 100 {
		xp -= threshold
		level++
		leveled = true
	}
	return xp, level, leveled
}
