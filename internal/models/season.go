package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	SEASON_STATUS_INACTIVE = "inactive"
	SEASON_STATUS_ACTIVE   = "active"
	SEASON_STATUS_PAUSED   = "paused"
	SEASON_STATUS_ENDED    = "ended"
)

type Season struct {
	bun.BaseModel `bun:"table:season"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	StartDate     time.Time `bun:"start_date" json:"start_date"`
	EndDate       time.Time `bun:"end_date" json:"end_date"`
	Status        string    `bun:"status,default:'inactive'" json:"status"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

// ValidSeasonTransition reports whether a season may move between the two
// statuses. The store enforces the same rule again with a conditional
// update, this is the cheap pre-check for caller-facing errors.
func ValidSeasonTransition(from, to string) bool {
	switch from {
	case SEASON_STATUS_INACTIVE:
		return to == SEASON_STATUS_ACTIVE
	case SEASON_STATUS_ACTIVE:
		return to == SEASON_STATUS_PAUSED || to == SEASON_STATUS_ENDED
	case SEASON_STATUS_PAUSED:
		return to == SEASON_STATUS_ACTIVE || to == SEASON_STATUS_ENDED
	default:
		return false
	}
}

// Event is an admin-defined seasonal content row, shown as-is by the chat
// collaborator. It carries no progression semantics.
type Event struct {
	bun.BaseModel `bun:"table:event"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name" json:"name"`
	StartDate     time.Time `bun:"start_date" json:"start_date"`
	EndDate       time.Time `bun:"end_date" json:"end_date"`
	Reward        string    `bun:"reward" json:"reward"`
}
