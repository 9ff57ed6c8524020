package models

import "errors"

// Domain sentinels. The API layer wraps them in errorx kinds; callers
// compare with errors.Is.
var (
	ErrSeasonActive      = errors.New("a season is already active")
	ErrNoActiveSeason    = errors.New("no active season")
	ErrNoPausedSeason    = errors.New("no paused season")
	ErrItemNotFound      = errors.New("shop item not found")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrAlreadyClaimed    = errors.New("daily reward already claimed")
	ErrPrestigeTooEarly  = errors.New("level ceiling not reached")
)
