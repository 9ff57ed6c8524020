package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/interfaces"
	"celestix/internal/models"
	"celestix/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceShop struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	rs                 *redsync.Redsync
	cache              caching.Cache
	limiter            interfaces.Limiter

	serviceReward *ServiceReward
}

func NewServiceShop(container *do.Injector) (*ServiceShop, error) {
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

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	return &ServiceShop{container, postgresDB, readonlyPostgresDB, rs, cache, limiter, serviceReward}, nil
}

func (service *ServiceShop) ListItems(ctx context.Context) ([]*models.ShopItem, error) {
	callback := func() ([]*models.ShopItem, error) {
		return datastore.ListShopItems(ctx, service.readonlyPostgresDB)
	}

	items, err := caching.UseCache(ctx, service.cache, DBKeyShopItems(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}

func (service *ServiceShop) AddItem(ctx context.Context, name string, price int, roleRef *int64) (*models.ShopItem, error) {
	if name == "" {
		return nil, errorx.Wrap(errors.New("name required"), errorx.Validation)
	}
	if price < 0 {
		return nil, errorx.Wrap(errors.New("price must not be negative"), errorx.Validation)
	}

	item := &models.ShopItem{
		Name:      name,
		Price:     price,
		RoleRef:   roleRef,
		CreatedAt: time.Now(),
	}
	if err := datastore.InsertShopItem(ctx, service.postgresDB, item); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyShopItems())

	return item, nil
}

func (service *ServiceShop) RemoveItem(ctx context.Context, itemID int64) error {
	ok, err := datastore.DeleteShopItem(ctx, service.postgresDB, itemID)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return errorx.Wrap(models.ErrItemNotFound, errorx.NotExist)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyShopItems())

	return nil
}

// Purchase spends coins on an item. The balance check and the debit are one
// conditional update, so a double-spend race loses cleanly with
// ErrInsufficientFunds.
func (service *ServiceShop) Purchase(ctx context.Context, userID, guildID, itemID int64) (*models.PurchaseResult, error) {
	err := service.limiter.Allow(ctx, LimitKeyUserPurchase(userID), redis_rate.PerMinute(PURCHASE_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, err
	}

	item, err := datastore.GetShopItemByID(ctx, service.readonlyPostgresDB, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(models.ErrItemNotFound, errorx.NotExist)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	mutex := service.rs.NewMutex(LockKeyUserPurchase(userID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrPurchaseLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	if _, err := datastore.GetOrCreateUser(ctx, service.postgresDB, userID); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	ok, err := datastore.SpendCoins(ctx, service.postgresDB, userID, item.Price)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return nil, errorx.Wrap(models.ErrInsufficientFunds, errorx.Invalid)
	}

	intent, err := service.serviceReward.DispatchPurchase(ctx, userID, guildID, item)
	if err != nil {
		return nil, err
	}

	user, err := datastore.GetUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &models.PurchaseResult{
		Item:   item,
		Coins:  user.Coins,
		Intent: intent,
	}, nil
}
