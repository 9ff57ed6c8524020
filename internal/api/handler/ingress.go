package handler

import (
	"time"

	"celestix/internal/models"
	"celestix/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupIngress struct {
	container *do.Injector
}

type activityPayload struct {
	UserID    int64     `json:"user_id"`
	GuildID   int64     `json:"guild_id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
}

func (gr *groupIngress) PostActivity(c echo.Context) error {
	serviceIngress, err := do.Invoke[*services.ServiceIngress](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload activityPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now()
	}

	outcome, err := serviceIngress.HandleActivity(c.Request().Context(), models.ActivityEvent{
		UserID:    payload.UserID,
		GuildID:   payload.GuildID,
		Timestamp: payload.Timestamp,
		Kind:      models.ActivityKind(payload.Kind),
	})
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, outcome, nil)
}
