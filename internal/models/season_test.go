package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSeasonTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{SEASON_STATUS_INACTIVE, SEASON_STATUS_ACTIVE, true},
		{SEASON_STATUS_ACTIVE, SEASON_STATUS_PAUSED, true},
		{SEASON_STATUS_ACTIVE, SEASON_STATUS_ENDED, true},
		{SEASON_STATUS_PAUSED, SEASON_STATUS_ACTIVE, true},
		{SEASON_STATUS_PAUSED, SEASON_STATUS_ENDED, true},

		{SEASON_STATUS_INACTIVE, SEASON_STATUS_PAUSED, false},
		{SEASON_STATUS_INACTIVE, SEASON_STATUS_ENDED, false},
		{SEASON_STATUS_ACTIVE, SEASON_STATUS_ACTIVE, false},
		{SEASON_STATUS_ENDED, SEASON_STATUS_ACTIVE, false},
		{SEASON_STATUS_ENDED, SEASON_STATUS_PAUSED, false},
		{"garbage", SEASON_STATUS_ACTIVE, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidSeasonTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
