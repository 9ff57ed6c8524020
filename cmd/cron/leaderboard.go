package main

import (
	"context"
	"log"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

const DEFAULT_CRON_LEADERBOARD = "@every 30m"

// LeaderboardJob rebuilds each guild's sorted set from the progression
// rows. The write-through path keeps the set fresh between runs, this
// repairs drift and seeds new deployments.
type LeaderboardJob struct {
	Db                 *bun.DB
	ServiceLeaderboard *services.ServiceLeaderboard
}

func NewLeaderboardJob(db *bun.DB, serviceLeaderboard *services.ServiceLeaderboard) *LeaderboardJob {
	return &LeaderboardJob{
		Db:                 db,
		ServiceLeaderboard: serviceLeaderboard,
	}
}

func (j *LeaderboardJob) Start(cronRunner *cron.Cron) {
	schedule := DEFAULT_CRON_LEADERBOARD
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_LEADERBOARD")
	if err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Leaderboard cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
	j.runScheduledTask()
}

func (j *LeaderboardJob) runScheduledTask() {
	j.ServiceLeaderboard.RebuildAll(context.Background())
}
