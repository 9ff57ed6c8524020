package handler

import (
	"crypto/subtle"
	"errors"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
)

// AuthnCollaborator gates every engine route behind the shared secret the
// chat collaborator was issued. The engine has no end users of its own.
func AuthnCollaborator(secret string) echo.MiddlewareFunc {
	return authnSharedSecret("X-Api-Key", secret)
}

// AuthnAdmin gates the admin surface behind a second secret.
func AuthnAdmin(secret string) echo.MiddlewareFunc {
	return authnSharedSecret("X-Admin-Key", secret)
}

func authnSharedSecret(header, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get(header)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("unauthorized"), errorx.Authn), -1)
				return nil
			}
			return next(c)
		}
	}
}
