package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	REWARD_TYPE_ROLE    = "role"
	REWARD_TYPE_COINS   = "coins"
	REWARD_TYPE_CHANNEL = "channel"
	REWARD_TYPE_BADGE   = "badge"
)

func ValidRewardType(t string) bool {
	switch t {
	case REWARD_TYPE_ROLE, REWARD_TYPE_COINS, REWARD_TYPE_CHANNEL, REWARD_TYPE_BADGE:
		return true
	}
	return false
}

// RewardRule maps a level to the reward granted on reaching it. Keyed by
// level, replaceable via upsert.
type RewardRule struct {
	bun.BaseModel `bun:"table:reward_rule"`
	Level         int    `bun:"level,pk" json:"level"`
	RewardType    string `bun:"reward_type" json:"reward_type"`
	RewardValue   string `bun:"reward_value" json:"reward_value"`
}

const (
	INTENT_GRANT_ROLE    = "grant_role"
	INTENT_CREDIT_COINS  = "credit_coins"
	INTENT_GRANT_CHANNEL = "grant_channel_access"
	INTENT_GRANT_BADGE   = "grant_badge"
	INTENT_NOTIFY        = "send_direct_notification"
)

const (
	INTENT_STATUS_PENDING   = "pending"
	INTENT_STATUS_DELIVERED = "delivered"
	INTENT_STATUS_FAILED    = "failed"
)

// RewardIntent is the resolved grant handed to the chat collaborator.
// CreditCoins is the exception: the engine applies it against the store
// itself and records the intent as delivered.
type RewardIntent struct {
	bun.BaseModel `bun:"table:reward_intent"`
	ID            string    `bun:"id,pk" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	GuildID       int64     `bun:"guild_id" json:"guild_id"`
	Kind          string    `bun:"kind" json:"kind"`
	Value         string    `bun:"value" json:"value"`
	Source        string    `bun:"source" json:"source"`
	Status        string    `bun:"status,default:'pending'" json:"status"`
	Detail        string    `bun:"detail" json:"detail"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// Signals emitted by the progression pipeline for the dispatcher.

type LevelUp struct {
	UserID   int64 `json:"user_id"`
	GuildID  int64 `json:"guild_id"`
	NewLevel int   `json:"new_level"`
}

type AchievementUnlocked struct {
	UserID      int64        `json:"user_id"`
	GuildID     int64        `json:"guild_id"`
	Achievement *Achievement `json:"achievement"`
}

type ChallengeCompleted struct {
	UserID    int64            `json:"user_id"`
	GuildID   int64            `json:"guild_id"`
	Challenge *WeeklyChallenge `json:"challenge"`
}
