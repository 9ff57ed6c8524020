package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel  `bun:"table:user"`
	ID             int64      `bun:"id,pk" json:"id"`
	XP             int        `bun:"xp" json:"xp"`
	Level          int        `bun:"level" json:"level"`
	Prestige       int        `bun:"prestige" json:"prestige"`
	Coins          int        `bun:"coins" json:"coins"`
	LastDailyClaim *time.Time `bun:"last_daily_claim" json:"last_daily_claim"`
	CreatedAt      time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at" json:"updated_at"`

	Rank int64 `bun:"-" json:"rank,omitempty"`
}

// Snapshot flattens user state into the variable set the condition grammar
// is allowed to reference.
func (u *User) Snapshot() map[string]int64 {
	return map[string]int64{
		"level":    int64(u.Level),
		"prestige": int64(u.Prestige),
		"coins":    int64(u.Coins),
	}
}

type RankInfo struct {
	UserID   int64   `json:"user_id"`
	XP       int     `json:"xp"`
	Level    int     `json:"level"`
	Prestige int     `json:"prestige"`
	XPNeeded int     `json:"xp_needed"`
	Progress float64 `json:"progress"`
	Season   *Season `json:"season"`
}

type AccrualResult struct {
	Applied    bool `json:"applied"`
	LeveledUp  bool `json:"leveled_up"`
	NewLevel   int  `json:"new_level"`
	LeftoverXP int  `json:"leftover_xp"`
}
