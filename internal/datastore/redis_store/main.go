package redis_store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"celestix/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func dbKeyLeaderboard(guildID int64) string {
	return fmt.Sprintf("leaderboard:%d", guildID)
}

func dbKeyIntentQueue(guildID int64) string {
	return fmt.Sprintf("reward_intents:%d", guildID)
}

func SetLeaderboard(ctx context.Context, cmd redis.Cmdable, guildID int64, v *models.LeaderboardItem) (*models.LeaderboardItem, error) {
	err := cmd.ZAdd(ctx, dbKeyLeaderboard(guildID), redis.Z{
		Score:  v.Score,
		Member: v.UserID,
	}).Err()
	if err != nil {
		return nil, err
	}

	return v, nil
}

func ClearLeaderboard(ctx context.Context, cmd redis.Cmdable, guildID int64) error {
	return cmd.Del(ctx, dbKeyLeaderboard(guildID)).Err()
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, guildID int64, num int) ([]*models.LeaderboardItem, error) {
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(guildID), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	var results []*models.LeaderboardItem
	for i, item := range items {
		id, _ := strconv.ParseInt(item.Member.(string), 10, 64)
		results = append(results, &models.LeaderboardItem{
			UserID: id,
			Score:  item.Score,
			Rank:   i + 1,
		})
	}

	return results, nil
}

func GetRankWithScore(ctx context.Context, cmd redis.Cmdable, guildID, userID int64) (redis.RankScore, error) {
	return cmd.ZRevRankWithScore(ctx, dbKeyLeaderboard(guildID), strconv.FormatInt(userID, 10)).Result()
}

// PushRewardIntent appends the intent to the guild's delivery queue; the
// chat collaborator drains it.
func PushRewardIntent(ctx context.Context, cmd redis.Cmdable, intent *models.RewardIntent) error {
	b, err := msgpack.Marshal(intent)
	if err != nil {
		return err
	}

	return cmd.RPush(ctx, dbKeyIntentQueue(intent.GuildID), b).Err()
}

// PopRewardIntent returns the oldest queued intent, or nil when the queue
// is empty.
func PopRewardIntent(ctx context.Context, cmd redis.Cmdable, guildID int64) (*models.RewardIntent, error) {
	b, err := cmd.LPop(ctx, dbKeyIntentQueue(guildID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var intent models.RewardIntent
	if err := msgpack.Unmarshal(b, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func PendingRewardIntentCount(ctx context.Context, cmd redis.Cmdable, guildID int64) (int64, error) {
	return cmd.LLen(ctx, dbKeyIntentQueue(guildID)).Result()
}
