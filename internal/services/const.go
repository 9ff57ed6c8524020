package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUserLock = errors.New("user locked")
var ErrPurchaseLock = errors.New("purchase locked")
var ErrDailyLock = errors.New("daily claim locked")

var errInvalidCategory = errors.New("invalid activity category")
var errInvalidThreshold = errors.New("threshold must be positive")

const (
	CONFIG_XP_MESSAGE_MIN     = "XP_MESSAGE_MIN"
	CONFIG_XP_MESSAGE_MAX     = "XP_MESSAGE_MAX"
	CONFIG_XP_REACTION        = "XP_REACTION"
	CONFIG_XP_VOICE_MINUTE    = "XP_VOICE_MINUTE"
	CONFIG_DAILY_COINS        = "DAILY_COINS"
	CONFIG_PRESTIGE_CEILING   = "PRESTIGE_CEILING"
	CONFIG_LEADERBOARD_LIMIT  = "LEADERBOARD_LIMIT"
	CONFIG_LEADERBOARD_GUILDS = "LEADERBOARD_GUILDS"

	CONFIG_CRONJOB_TIME_SEASON_EXPIRY = "CRONJOB_TIME_SEASON_EXPIRY"
	CONFIG_CRONJOB_TIME_WEEKLY_RESET  = "CRONJOB_TIME_WEEKLY_RESET"
	CONFIG_CRONJOB_TIME_LEADERBOARD   = "CRONJOB_TIME_LEADERBOARD"

	DEFAULT_XP_MESSAGE_MIN    = 15
	DEFAULT_XP_MESSAGE_MAX    = 25
	DEFAULT_XP_REACTION       = 5
	DEFAULT_XP_VOICE_MINUTE   = 10
	DEFAULT_DAILY_COINS       = 100
	DEFAULT_PRESTIGE_CEILING  = 55
	DEFAULT_LEADERBOARD_LIMIT = 10

	DAILY_CLAIM_INTERVAL = 24 * time.Hour

	PURCHASE_RATE_LIMIT_PER_MINUTE = 30
	CLAIM_RATE_LIMIT_PER_MINUTE    = 10

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
	CACHE_TTL_15_MINS   = 15 * time.Minute
)

func LockKeyUserProgress(userID int64) string {
	return fmt.Sprintf("lock:user-progress:%d", userID)
}

func LockKeyUserPurchase(userID int64) string {
	return fmt.Sprintf("lock:user-purchase:%d", userID)
}

func LockKeyUserDaily(userID int64) string {
	return fmt.Sprintf("lock:user-daily:%d", userID)
}

// db
func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyAccrualAllowed() string {
	return "season:accrual_allowed"
}

func DBKeyAchievementCatalog() string {
	return "achievement:catalog"
}

func DBKeyChallengesByCategory(category string) string {
	return fmt.Sprintf("challenge:category:%s", category)
}

func DBKeyShopItems() string {
	return "shop:items"
}

func DBKeyRewardRule(level int) string {
	return fmt.Sprintf("reward_rule:%d", level)
}

func LimitKeyUserPurchase(userID int64) string {
	return fmt.Sprintf("users:purchase:%d", userID)
}

func LimitKeyUserDaily(userID int64) string {
	return fmt.Sprintf("users:daily:%d", userID)
}
