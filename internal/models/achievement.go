package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Achievement struct {
	bun.BaseModel `bun:"table:achievement"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Name          string     `bun:"name" json:"name"`
	Description   string     `bun:"description" json:"description"`
	Condition     *Condition `bun:"condition,type:jsonb" json:"condition"`
	Reward        string     `bun:"reward" json:"reward"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievement"`
	UserID        int64      `bun:"user_id,pk" json:"user_id"`
	AchievementID int64      `bun:"achievement_id,pk" json:"achievement_id"`
	Completed     bool       `bun:"completed" json:"completed"`
	CompletedAt   *time.Time `bun:"completed_at" json:"completed_at"`

	Achievement *Achievement `bun:"-" json:"achievement,omitempty"`
}

type AchievementOverview struct {
	Completed []*Achievement `json:"completed"`
	Open      []*Achievement `json:"open"`
}
