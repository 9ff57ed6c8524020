package interfaces

import (
	"context"

	"celestix/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// RewardSink hands resolved grants to the chat collaborator. The engine
// never touches the platform itself.
type RewardSink interface {
	Push(ctx context.Context, intent *models.RewardIntent) error
}
