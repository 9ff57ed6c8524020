package models

type LeaderboardItem struct {
	UserID   int64   `json:"user_id"`
	Score    float64 `json:"score"`
	Level    int     `json:"level"`
	Prestige int     `json:"prestige"`
	Rank     int     `json:"rank,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardItem `json:"leaderboard"`
	Me          *LeaderboardItem   `json:"me,omitempty"`
}

// LeaderboardScore folds the rank ordering (level first, prestige as the
// tiebreaker) into a single ZSET score.
func LeaderboardScore(level, prestige int) float64 {
	return float64(level)*100000 + float64(prestige)
}

// LeaderboardScoreParts recovers level and prestige from a ZSET score.
func LeaderboardScoreParts(score float64) (int, int) {
	total := int(score)
	return total / 100000, total % 100000
}
