package models

import "time"

type ActivityKind string

const (
	ACTIVITY_MESSAGE      ActivityKind = "message"
	ACTIVITY_REACTION     ActivityKind = "reaction"
	ACTIVITY_VOICE_MINUTE ActivityKind = "voice_minute"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ACTIVITY_MESSAGE, ACTIVITY_REACTION, ACTIVITY_VOICE_MINUTE:
		return true
	}
	return false
}

// ActivityEvent is what the chat collaborator pushes into the engine for
// every qualifying user action.
type ActivityEvent struct {
	UserID    int64        `json:"user_id"`
	GuildID   int64        `json:"guild_id"`
	Timestamp time.Time    `json:"timestamp"`
	Kind      ActivityKind `json:"kind"`
}

// ActivityOutcome summarizes everything one ingested event triggered.
type ActivityOutcome struct {
	XP           int                   `json:"xp"`
	Accrual      *AccrualResult        `json:"accrual"`
	Achievements []AchievementUnlocked `json:"achievements,omitempty"`
	Challenges   []ChallengeCompleted  `json:"challenges,omitempty"`
	Intents      []*RewardIntent       `json:"intents,omitempty"`
}
