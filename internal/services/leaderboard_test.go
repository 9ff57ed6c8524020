package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGuildList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int64
	}{
		{"empty", "", nil},
		{"single", "812", []int64{812}},
		{"several with spaces", "812, 900, 7", []int64{812, 900, 7}},
		{"skips junk", "812,abc,-3,0,900", []int64{812, 900}},
		{"trailing comma", "812,", []int64{812}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseGuildList(tc.raw))
		})
	}
}
