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

type groupShop struct {
	container *do.Injector
}

type shopItemPayload struct {
	Name    string `json:"name"`
	Price   int    `json:"price"`
	RoleRef *int64 `json:"role_ref"`
}

type purchasePayload struct {
	UserID  int64 `json:"user_id"`
	GuildID int64 `json:"guild_id"`
}

func (gr *groupShop) ListItems(c echo.Context) error {
	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceShop.ListItems(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, items, nil)
}

func (gr *groupShop) AddItem(c echo.Context) error {
	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload shopItemPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	item, err := serviceShop.AddItem(c.Request().Context(), payload.Name, payload.Price, payload.RoleRef)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, item, nil)
}

func (gr *groupShop) RemoveItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("item"), 10, 64)
	if err != nil || itemID <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid item id"), errorx.Validation))
	}

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceShop.RemoveItem(c.Request().Context(), itemID); err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, "removed", nil)
}

func (gr *groupShop) Purchase(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("item"), 10, 64)
	if err != nil || itemID <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid item id"), errorx.Validation))
	}

	var payload purchasePayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceShop.Purchase(c.Request().Context(), payload.UserID, payload.GuildID, itemID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, result, nil)
}
