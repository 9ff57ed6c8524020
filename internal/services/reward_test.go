package services

import (
	"testing"

	"celestix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoinReward(t *testing.T) {
	cases := []struct {
		input  string
		amount int
		ok     bool
	}{
		{"500 coins", 500, true},
		{"  500 Coins ", 500, true},
		{"1 coins", 1, true},
		{"0 coins", 0, false},
		{"-5 coins", 0, false},
		{"coins 500", 0, false},
		{"500", 0, false},
		{"Legend badge", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		amount, ok := parseCoinReward(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		if tc.ok {
			assert.Equal(t, tc.amount, amount, tc.input)
		}
	}
}

func TestIntentKindForRule(t *testing.T) {
	cases := map[string]string{
		models.REWARD_TYPE_ROLE:    models.INTENT_GRANT_ROLE,
		models.REWARD_TYPE_COINS:   models.INTENT_CREDIT_COINS,
		models.REWARD_TYPE_CHANNEL: models.INTENT_GRANT_CHANNEL,
		models.REWARD_TYPE_BADGE:   models.INTENT_GRANT_BADGE,
	}

	for rewardType, want := range cases {
		kind, err := intentKindForRule(rewardType)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}

	_, err := intentKindForRule("nft")
	require.Error(t, err)
}
