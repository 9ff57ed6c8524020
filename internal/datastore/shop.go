package datastore

import (
	"context"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableShopItem(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ShopItem)(nil)).IfNotExists().Exec(ctx)
	return err
}

func InsertShopItem(ctx context.Context, db bun.IDB, item *models.ShopItem) error {
	_, err := db.NewInsert().Model(item).Exec(ctx)
	return err
}

func DeleteShopItem(ctx context.Context, db bun.IDB, itemID int64) (bool, error) {
	res, err := db.NewDelete().Model((*models.ShopItem)(nil)).Where("id = ?", itemID).Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func ListShopItems(ctx context.Context, db bun.IDB) ([]*models.ShopItem, error) {
	var items []*models.ShopItem
	err := db.NewSelect().Model(&items).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func GetShopItemByID(ctx context.Context, db bun.IDB, itemID int64) (*models.ShopItem, error) {
	var item models.ShopItem
	err := db.NewSelect().Model(&item).Where("id = ?", itemID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
