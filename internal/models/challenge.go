package models

import (
	"time"

	"github.com/uptrace/bun"
)

type WeeklyChallenge struct {
	bun.BaseModel `bun:"table:weekly_challenge"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	Name          string       `bun:"name" json:"name"`
	Description   string       `bun:"description" json:"description"`
	Category      ActivityKind `bun:"category" json:"category"`
	Threshold     int          `bun:"threshold" json:"threshold"`
	Reward        string       `bun:"reward" json:"reward"`
	CreatedAt     time.Time    `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type UserChallengeProgress struct {
	bun.BaseModel `bun:"table:user_challenge_progress"`
	UserID        int64      `bun:"user_id,pk" json:"user_id"`
	ChallengeID   int64      `bun:"challenge_id,pk" json:"challenge_id"`
	Progress      int        `bun:"progress" json:"progress"`
	Completed     bool       `bun:"completed" json:"completed"`
	CompletedAt   *time.Time `bun:"completed_at" json:"completed_at"`

	Challenge *WeeklyChallenge `bun:"-" json:"challenge,omitempty"`
}
