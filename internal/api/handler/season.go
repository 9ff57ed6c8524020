package handler

import (
	"time"

	"celestix/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSeason struct {
	container *do.Injector
}

type seasonPayload struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (gr *groupSeason) Current(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	season, err := serviceSeason.CurrentSeason(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, season, nil)
}

func (gr *groupSeason) Start(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload seasonPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	season, err := serviceSeason.StartSeason(c.Request().Context(), payload.StartDate, payload.EndDate)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, season, nil)
}

func (gr *groupSeason) Pause(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceSeason.PauseSeason(c.Request().Context()); err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, "paused", nil)
}

func (gr *groupSeason) Resume(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceSeason.ResumeSeason(c.Request().Context()); err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, "resumed", nil)
}

func (gr *groupSeason) End(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceSeason.EndSeason(c.Request().Context()); err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, "ended", nil)
}

type eventPayload struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reward    string    `json:"reward"`
}

func (gr *groupSeason) AddEvent(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	event, err := serviceSeason.AddEvent(c.Request().Context(), payload.Name, payload.StartDate, payload.EndDate, payload.Reward)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, event, nil)
}

func (gr *groupSeason) LatestEvent(c echo.Context) error {
	serviceSeason, err := do.Invoke[*services.ServiceSeason](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	event, err := serviceSeason.LatestEvent(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, event, nil)
}
