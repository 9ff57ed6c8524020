package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardScoreOrdering(t *testing.T) {
	// Level dominates, prestige breaks ties.
	assert.Greater(t, LeaderboardScore(10, 0), LeaderboardScore(9, 55))
	assert.Greater(t, LeaderboardScore(10, 1), LeaderboardScore(10, 0))
	assert.Equal(t, LeaderboardScore(10, 3), LeaderboardScore(10, 3))
}

func TestLeaderboardScoreRoundTrip(t *testing.T) {
	level, prestige := LeaderboardScoreParts(LeaderboardScore(42, 7))
	assert.Equal(t, 42, level)
	assert.Equal(t, 7, prestige)

	level, prestige = LeaderboardScoreParts(LeaderboardScore(1, 0))
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, prestige)
}
