package datastore

import (
	"context"

	"celestix/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableEvent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Event)(nil)).IfNotExists().Exec(ctx)
	return err
}

func InsertEvent(ctx context.Context, db bun.IDB, event *models.Event) error {
	_, err := db.NewInsert().Model(event).Exec(ctx)
	return err
}

func GetLatestEvent(ctx context.Context, db bun.IDB) (*models.Event, error) {
	var event models.Event
	err := db.NewSelect().Model(&event).Order("id DESC").Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
