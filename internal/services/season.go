package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/models"
	"celestix/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceSeason owns the season lifecycle. Every transition is a single
// conditional update keyed on the previous status, so manual commands and
// the expiry tick cannot race each other into a double transition.
type ServiceSeason struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
}

func NewServiceSeason(container *do.Injector) (*ServiceSeason, error) {
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

	return &ServiceSeason{container, postgresDB, readonlyPostgresDB, cache}, nil
}

func (service *ServiceSeason) StartSeason(ctx context.Context, start, end time.Time) (*models.Season, error) {
	if !end.After(start) {
		return nil, errorx.Wrap(errors.New("end date must be after start date"), errorx.Validation)
	}

	ok, err := datastore.InsertActiveSeason(ctx, service.postgresDB, start, end)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return nil, errorx.Wrap(models.ErrSeasonActive, errorx.Invalid)
	}

	service.invalidateGate(ctx)

	season, err := datastore.GetActiveSeason(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return season, nil
}

func (service *ServiceSeason) PauseSeason(ctx context.Context) error {
	ok, err := datastore.TransitionSeason(ctx, service.postgresDB, models.SEASON_STATUS_ACTIVE, models.SEASON_STATUS_PAUSED)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return errorx.Wrap(models.ErrNoActiveSeason, errorx.Invalid)
	}

	service.invalidateGate(ctx)
	return nil
}

func (service *ServiceSeason) ResumeSeason(ctx context.Context) error {
	ok, err := datastore.TransitionSeason(ctx, service.postgresDB, models.SEASON_STATUS_PAUSED, models.SEASON_STATUS_ACTIVE)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return errorx.Wrap(models.ErrNoPausedSeason, errorx.Invalid)
	}

	service.invalidateGate(ctx)
	return nil
}

func (service *ServiceSeason) EndSeason(ctx context.Context) error {
	ok, err := datastore.EndCurrentSeason(ctx, service.postgresDB, time.Now())
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return errorx.Wrap(models.ErrNoActiveSeason, errorx.Invalid)
	}

	service.invalidateGate(ctx)
	return nil
}

// CheckExpiry is the scheduled tick. A storage failure is left for the
// next tick, the cron runner only logs it.
func (service *ServiceSeason) CheckExpiry(ctx context.Context) (bool, error) {
	expired, err := datastore.ExpireActiveSeason(ctx, service.postgresDB, time.Now())
	if err != nil {
		return false, errorx.Wrap(err, errorx.Service)
	}

	if expired {
		service.invalidateGate(ctx)
	}
	return expired, nil
}

// IsAccrualAllowed gates XP accrual on an active season. It is a read, not
// a lock: the short cache makes the tick before expiry fires observably
// stale, which the engine accepts.
func (service *ServiceSeason) IsAccrualAllowed(ctx context.Context) (bool, error) {
	callback := func() (bool, error) {
		return datastore.HasActiveSeason(ctx, service.readonlyPostgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyAccrualAllowed(), CACHE_TTL_5_SECONDS, callback)
}

// CurrentSeason returns the running season, falling back to the most
// recent row for display between seasons. Nil when none was ever started.
func (service *ServiceSeason) CurrentSeason(ctx context.Context) (*models.Season, error) {
	season, err := datastore.GetCurrentSeason(ctx, service.readonlyPostgresDB)
	if err == nil {
		return season, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	season, err = datastore.GetLatestSeason(ctx, service.readonlyPostgresDB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return season, nil
}

// AddEvent records a seasonal content row. Display-only, the collaborator
// reads it back verbatim.
func (service *ServiceSeason) AddEvent(ctx context.Context, name string, start, end time.Time, reward string) (*models.Event, error) {
	if !end.After(start) {
		return nil, errorx.Wrap(errors.New("end date must be after start date"), errorx.Validation)
	}

	event := &models.Event{
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Reward:    reward,
	}
	if err := datastore.InsertEvent(ctx, service.postgresDB, event); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return event, nil
}

func (service *ServiceSeason) LatestEvent(ctx context.Context) (*models.Event, error) {
	event, err := datastore.GetLatestEvent(ctx, service.readonlyPostgresDB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return event, nil
}

func (service *ServiceSeason) invalidateGate(ctx context.Context) {
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAccrualAllowed())
}
