package services

import (
	"context"

	"celestix/internal/datastore/redis_store"
	"celestix/internal/interfaces"
	"celestix/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// RedisRewardSink queues intents on the guild's redis list for the chat
// collaborator to drain.
type RedisRewardSink struct {
	redisDB redis.UniversalClient
}

var _ interfaces.RewardSink = (*RedisRewardSink)(nil)

func NewRedisRewardSink(container *do.Injector) (interfaces.RewardSink, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	return &RedisRewardSink{redisDB}, nil
}

func (sink *RedisRewardSink) Push(ctx context.Context, intent *models.RewardIntent) error {
	return redis_store.PushRewardIntent(ctx, sink.redisDB, intent)
}
