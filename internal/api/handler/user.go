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

type groupUser struct {
	container *do.Injector
}

func paramUserID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorx.Wrap(errors.New("invalid user id"), errorx.Validation)
	}
	return id, nil
}

func (gr *groupUser) GetRank(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rank, err := serviceUser.GetRank(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, rank, nil)
}

func (gr *groupUser) ClaimDaily(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceUser.ClaimDaily(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) Prestige(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceProgression, err := do.Invoke[*services.ServiceProgression](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceProgression.Prestige(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) GetAchievements(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	overview, err := serviceAchievement.GetAchievements(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, overview, nil)
}

func (gr *groupUser) GetWeeklyChallenges(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	challenges, err := serviceChallenge.GetWeeklyChallenges(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, challenges, nil)
}

func (gr *groupUser) GetRewardIntents(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	intents, err := serviceReward.ListIntents(c.Request().Context(), userID, limit)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, intents, nil)
}
