package handler

import (
	"celestix/internal/models"
	"celestix/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAchievement struct {
	container *do.Injector
}

type achievementPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Reward      string `json:"reward"`
}

func (gr *groupAchievement) Add(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload achievementPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	achievement, err := serviceAchievement.AddAchievement(c.Request().Context(), payload.Name, payload.Description, payload.Condition, payload.Reward)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, achievement, nil)
}

type challengePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Threshold   int    `json:"threshold"`
	Reward      string `json:"reward"`
}

type groupChallenge struct {
	container *do.Injector
}

func (gr *groupChallenge) Add(c echo.Context) error {
	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload challengePayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	challenge, err := serviceChallenge.AddChallenge(c.Request().Context(), payload.Name, payload.Description, models.ActivityKind(payload.Category), payload.Threshold, payload.Reward)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, challenge, nil)
}
