package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"celestix/internal/datastore"
	"celestix/internal/datastore/redis_store"
	"celestix/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const LEADERBOARD_REBUILD_PAGE = 500

// ServiceLeaderboard keeps a per-guild sorted set in redis as a read model
// over the progression rows. Writes go through on every applied accrual,
// the cron rebuild repairs whatever drifted.
type ServiceLeaderboard struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	redisDB            redis.UniversalClient

	serviceConfig *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, readonlyPostgresDB, redisDB, serviceConfig}, nil
}

// UpdateEntry writes the user's current standing through to the sorted set.
// Failures only degrade the read model, so they are logged and swallowed.
func (service *ServiceLeaderboard) UpdateEntry(ctx context.Context, guildID int64, user *models.User) {
	_, err := redis_store.SetLeaderboard(ctx, service.redisDB, guildID, &models.LeaderboardItem{
		UserID: user.ID,
		Score:  models.LeaderboardScore(user.Level, user.Prestige),
	})
	if err != nil {
		log.Println("leaderboard update failed:", err, "guild:", guildID, "user:", user.ID)
	}
}

func (service *ServiceLeaderboard) GetLeaderboard(ctx context.Context, guildID, userID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)
	}

	items, err := redis_store.GetLeaderboard(ctx, service.redisDB, guildID, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	for _, item := range items {
		item.Level, item.Prestige = models.LeaderboardScoreParts(item.Score)
	}

	response := &models.LeaderboardResponse{Leaderboard: items}

	rankScore, err := redis_store.GetRankWithScore(ctx, service.redisDB, guildID, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return response, nil
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	me := &models.LeaderboardItem{
		UserID: userID,
		Score:  rankScore.Score,
		Rank:   int(rankScore.Rank) + 1,
	}
	me.Level, me.Prestige = models.LeaderboardScoreParts(me.Score)
	response.Me = me

	return response, nil
}

// GetTopOverall reads the cross-guild standings straight from the store,
// ordered by level, prestige, then xp.
func (service *ServiceLeaderboard) GetTopOverall(ctx context.Context, limit int) ([]*models.User, error) {
	if limit <= 0 {
		limit, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)
	}

	users, err := datastore.GetTopUsers(ctx, service.readonlyPostgresDB, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	for i, user := range users {
		user.Rank = int64(i + 1)
	}
	return users, nil
}

// Rebuild pages the whole user table into a fresh sorted set. Runs from the
// cron worker.
func (service *ServiceLeaderboard) Rebuild(ctx context.Context, guildID int64) (int, error) {
	if err := redis_store.ClearLeaderboard(ctx, service.redisDB, guildID); err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	total := 0
	for offset := 0; ; offset += LEADERBOARD_REBUILD_PAGE {
		users, err := datastore.GetUsersByLimit(ctx, service.readonlyPostgresDB, LEADERBOARD_REBUILD_PAGE, offset)
		if err != nil {
			return total, errorx.Wrap(err, errorx.Service)
		}
		if len(users) == 0 {
			return total, nil
		}

		for _, user := range users {
			_, err := redis_store.SetLeaderboard(ctx, service.redisDB, guildID, &models.LeaderboardItem{
				UserID: user.ID,
				Score:  models.LeaderboardScore(user.Level, user.Prestige),
			})
			if err != nil {
				return total, errorx.Wrap(err, errorx.Service)
			}
			total++
		}
	}
}

// RebuildAll rebuilds every guild named by the LEADERBOARD_GUILDS config
// row, a comma-separated list maintained by the collaborator. A failed
// guild is logged and the rest still run.
func (service *ServiceLeaderboard) RebuildAll(ctx context.Context) {
	raw, _ := service.serviceConfig.GetStringConfig(ctx, CONFIG_LEADERBOARD_GUILDS, "")

	for _, guildID := range parseGuildList(raw) {
		total, err := service.Rebuild(ctx, guildID)
		if err != nil {
			log.Println("leaderboard rebuild failed:", err, "guild:", guildID)
			continue
		}
		log.Println("Leaderboard rebuilt:", "guild:", guildID, "entries:", total)
	}
}

// parseGuildList drops anything that is not a positive integer id.
func parseGuildList(raw string) []int64 {
	var guilds []int64
	for _, part := range strings.Split(raw, ",") {
		guildID, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || guildID <= 0 {
			continue
		}
		guilds = append(guilds, guildID)
	}
	return guilds
}
