package main

import (
	"context"
	"log"
	"time"

	"celestix/internal/datastore"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// Monday 00:00 UTC, the start of the challenge week.
const DEFAULT_CRON_WEEKLY_RESET = "0 0 * * 1"

type WeeklyResetJob struct {
	Db *bun.DB
}

func NewWeeklyResetJob(db *bun.DB) *WeeklyResetJob {
	return &WeeklyResetJob{Db: db}
}

func (j *WeeklyResetJob) Start(cronRunner *cron.Cron) {
	schedule := DEFAULT_CRON_WEEKLY_RESET
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_WEEKLY_RESET")
	if err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Weekly reset cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

func (j *WeeklyResetJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start resetting weekly challenges ...")

	affected, err := datastore.ResetWeeklyProgress(ctx, j.Db)
	if err != nil {
		log.Println("weekly reset failed:", err)
		return
	}
	log.Println("Weekly challenges reset, rows:", affected)
}
