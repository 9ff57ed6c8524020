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

type groupLeaderboard struct {
	container *do.Injector
}

func (gr *groupLeaderboard) GetLeaderboard(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("guild"), 10, 64)
	if err != nil || guildID <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid guild id"), errorx.Validation))
	}

	userID, _ := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	leaderboard, err := serviceLeaderboard.GetLeaderboard(c.Request().Context(), guildID, userID, limit)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, leaderboard, nil)
}

func (gr *groupLeaderboard) GetTopOverall(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	users, err := serviceLeaderboard.GetTopOverall(c.Request().Context(), limit)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, users, nil)
}
