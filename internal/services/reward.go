package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"celestix/internal/datastore"
	"celestix/internal/datastore/redis_store"
	"celestix/internal/interfaces"
	"celestix/internal/models"
	"celestix/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const (
	INTENT_SOURCE_LEVEL_UP    = "level_up"
	INTENT_SOURCE_ACHIEVEMENT = "achievement"
	INTENT_SOURCE_CHALLENGE   = "challenge"
	INTENT_SOURCE_PURCHASE    = "purchase"
)

// ServiceReward turns progression signals into reward intents. Coin credits
// are applied against the store directly; everything else is persisted
// pending and queued for the chat collaborator. A failed queue push is
// recorded and logged, never propagated back into progression.
type ServiceReward struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	redisDB            redis.UniversalClient
	cache              caching.Cache
	sink               interfaces.RewardSink
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	sink, err := do.Invoke[interfaces.RewardSink](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, postgresDB, readonlyPostgresDB, redisDB, cache, sink}, nil
}

func (service *ServiceReward) AddRewardRule(ctx context.Context, level int, rewardType, rewardValue string) (*models.RewardRule, error) {
	if level < 1 {
		return nil, errorx.Wrap(errors.New("level must be positive"), errorx.Validation)
	}
	if !models.ValidRewardType(rewardType) {
		return nil, errorx.Wrap(fmt.Errorf("unknown reward type %q", rewardType), errorx.Validation)
	}

	rule := &models.RewardRule{
		Level:       level,
		RewardType:  rewardType,
		RewardValue: rewardValue,
	}
	if err := datastore.UpsertRewardRule(ctx, service.postgresDB, rule); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewardRule(level))

	return rule, nil
}

func (service *ServiceReward) ListRewardRules(ctx context.Context) ([]*models.RewardRule, error) {
	rules, err := datastore.ListRewardRules(ctx, service.readonlyPostgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return rules, nil
}

// ResolveLevelUp looks up the rule for the reached level. Levels without a
// rule produce nothing, which is the common case.
func (service *ServiceReward) ResolveLevelUp(ctx context.Context, signal models.LevelUp) (*models.RewardIntent, error) {
	rule, err := service.ruleByLevel(ctx, signal.NewLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	kind, err := intentKindForRule(rule.RewardType)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if kind == models.INTENT_CREDIT_COINS {
		amount, err := strconv.Atoi(rule.RewardValue)
		if err != nil || amount <= 0 {
			return nil, errorx.Wrap(fmt.Errorf("bad coin amount %q for level %d", rule.RewardValue, rule.Level), errorx.Service)
		}
		return service.creditCoins(ctx, signal.UserID, signal.GuildID, amount, INTENT_SOURCE_LEVEL_UP)
	}

	intent := service.newIntent(signal.UserID, signal.GuildID, kind, rule.RewardValue, INTENT_SOURCE_LEVEL_UP)
	return intent, service.dispatch(ctx, intent)
}

func (service *ServiceReward) ResolveAchievement(ctx context.Context, signal models.AchievementUnlocked) (*models.RewardIntent, error) {
	return service.resolveFreeText(ctx, signal.UserID, signal.GuildID, signal.Achievement.Reward, INTENT_SOURCE_ACHIEVEMENT)
}

func (service *ServiceReward) ResolveChallenge(ctx context.Context, signal models.ChallengeCompleted) (*models.RewardIntent, error) {
	return service.resolveFreeText(ctx, signal.UserID, signal.GuildID, signal.Challenge.Reward, INTENT_SOURCE_CHALLENGE)
}

// DispatchPurchase emits the collaborator grant for a bought item.
func (service *ServiceReward) DispatchPurchase(ctx context.Context, userID, guildID int64, item *models.ShopItem) (*models.RewardIntent, error) {
	value := item.Name
	kind := models.INTENT_NOTIFY
	if item.RoleRef != nil {
		kind = models.INTENT_GRANT_ROLE
		value = strconv.FormatInt(*item.RoleRef, 10)
	}

	intent := service.newIntent(userID, guildID, kind, value, INTENT_SOURCE_PURCHASE)
	return intent, service.dispatch(ctx, intent)
}

// PopQueued hands the collaborator the oldest queued intent and stamps it
// delivered. Nil when the guild's queue is empty.
func (service *ServiceReward) PopQueued(ctx context.Context, guildID int64) (*models.RewardIntent, error) {
	intent, err := redis_store.PopRewardIntent(ctx, service.redisDB, guildID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if intent == nil {
		return nil, nil
	}

	if err := datastore.MarkIntentDelivered(ctx, service.postgresDB, intent.ID); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	intent.Status = models.INTENT_STATUS_DELIVERED

	return intent, nil
}

func (service *ServiceReward) QueueDepth(ctx context.Context, guildID int64) (int64, error) {
	depth, err := redis_store.PendingRewardIntentCount(ctx, service.redisDB, guildID)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}
	return depth, nil
}

func (service *ServiceReward) ListIntents(ctx context.Context, userID int64, limit int) ([]*models.RewardIntent, error) {
	if limit <= 0 {
		limit = 20
	}
	intents, err := datastore.ListIntentsByUser(ctx, service.readonlyPostgresDB, userID, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return intents, nil
}

// resolveFreeText handles achievement and challenge reward strings. The
// single structured form is "<n> coins", credited by the engine itself;
// anything else becomes a notification for the collaborator to interpret.
func (service *ServiceReward) resolveFreeText(ctx context.Context, userID, guildID int64, reward, source string) (*models.RewardIntent, error) {
	if reward == "" {
		return nil, nil
	}

	if amount, ok := parseCoinReward(reward); ok {
		return service.creditCoins(ctx, userID, guildID, amount, source)
	}

	intent := service.newIntent(userID, guildID, models.INTENT_NOTIFY, reward, source)
	return intent, service.dispatch(ctx, intent)
}

func (service *ServiceReward) creditCoins(ctx context.Context, userID, guildID int64, amount int, source string) (*models.RewardIntent, error) {
	intent := service.newIntent(userID, guildID, models.INTENT_CREDIT_COINS, strconv.Itoa(amount), source)
	if err := datastore.AddCoins(ctx, service.postgresDB, userID, amount); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	intent.Status = models.INTENT_STATUS_DELIVERED
	if err := datastore.InsertRewardIntent(ctx, service.postgresDB, intent); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return intent, nil
}

// dispatch persists the pending intent and pushes it to the sink. The push
// is best effort: on failure the intent is marked failed for a later sweep.
func (service *ServiceReward) dispatch(ctx context.Context, intent *models.RewardIntent) error {
	if err := datastore.InsertRewardIntent(ctx, service.postgresDB, intent); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if err := service.sink.Push(ctx, intent); err != nil {
		log.Println("reward dispatch failed:", err, "intent:", intent.ID, "user:", intent.UserID)
		if markErr := datastore.MarkIntentFailed(ctx, service.postgresDB, intent.ID, err.Error()); markErr != nil {
			log.Println("mark intent failed:", markErr, "intent:", intent.ID)
		}
	}

	return nil
}

func (service *ServiceReward) newIntent(userID, guildID int64, kind, value, source string) *models.RewardIntent {
	return &models.RewardIntent{
		ID:        uuid.NewString(),
		UserID:    userID,
		GuildID:   guildID,
		Kind:      kind,
		Value:     value,
		Source:    source,
		Status:    models.INTENT_STATUS_PENDING,
		CreatedAt: time.Now(),
	}
}

func (service *ServiceReward) ruleByLevel(ctx context.Context, level int) (*models.RewardRule, error) {
	callback := func() (*models.RewardRule, error) {
		return datastore.GetRewardRuleByLevel(ctx, service.readonlyPostgresDB, level)
	}

	return caching.UseCache(ctx, service.cache, DBKeyRewardRule(level), CACHE_TTL_15_MINS, callback)
}

func intentKindForRule(rewardType string) (string, error) {
	switch rewardType {
	case models.REWARD_TYPE_ROLE:
		return models.INTENT_GRANT_ROLE, nil
	case models.REWARD_TYPE_COINS:
		return models.INTENT_CREDIT_COINS, nil
	case models.REWARD_TYPE_CHANNEL:
		return models.INTENT_GRANT_CHANNEL, nil
	case models.REWARD_TYPE_BADGE:
		return models.INTENT_GRANT_BADGE, nil
	}
	return "", fmt.Errorf("unknown reward type %q", rewardType)
}

func parseCoinReward(reward string) (int, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(reward)))
	if len(fields) != 2 || fields[1] != "coins" {
		return 0, false
	}
	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}
