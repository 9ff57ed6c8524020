package handler

import (
	"errors"
	"strconv"

	"celestix/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupReward struct {
	container *do.Injector
}

type rewardRulePayload struct {
	Level       int    `json:"level"`
	RewardType  string `json:"reward_type"`
	RewardValue string `json:"reward_value"`
}

func (gr *groupReward) AddRule(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload rewardRulePayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	rule, err := serviceReward.AddRewardRule(c.Request().Context(), payload.Level, payload.RewardType, payload.RewardValue)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, rule, nil)
}

func (gr *groupReward) PopQueued(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("guild"), 10, 64)
	if err != nil || guildID <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid guild id"), errorx.Validation))
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	intent, err := serviceReward.PopQueued(c.Request().Context(), guildID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, intent, nil)
}

func (gr *groupReward) QueueDepth(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("guild"), 10, 64)
	if err != nil || guildID <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid guild id"), errorx.Validation))
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	depth, err := serviceReward.QueueDepth(c.Request().Context(), guildID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, depth, nil)
}

func (gr *groupReward) ListRules(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rules, err := serviceReward.ListRewardRules(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, rules, nil)
}
