package main

import (
	"context"
	"log"
	"time"

	"celestix/internal/datastore"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

const DEFAULT_CRON_SEASON_EXPIRY = "@every 1m"

// SeasonExpiryJob flips an active season to ended once its end date passes.
// The update is conditional, a manual EndSeason racing the tick is harmless.
type SeasonExpiryJob struct {
	Db *bun.DB
}

func NewSeasonExpiryJob(db *bun.DB) *SeasonExpiryJob {
	return &SeasonExpiryJob{Db: db}
}

func (j *SeasonExpiryJob) Start(cronRunner *cron.Cron) {
	schedule := DEFAULT_CRON_SEASON_EXPIRY
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_SEASON_EXPIRY")
	if err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Season expiry cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

func (j *SeasonExpiryJob) runScheduledTask() {
	ctx := context.Background()

	expired, err := datastore.ExpireActiveSeason(ctx, j.Db, time.Now())
	if err != nil {
		log.Println("season expiry check failed:", err)
		return
	}
	if expired {
		log.Println("Season expired, accrual gate closed")
	}
}
