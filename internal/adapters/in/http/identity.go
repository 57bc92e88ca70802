package http

import (
	"net/http"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"

	identityKey = "dispatch.identity"
)

// IdentityMiddleware reads the caller identity set by the upstream auth layer.
// Requests without a valid identity are rejected with 401.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := kernel.NewIdentity(
				ctx.Request().Header.Get(HeaderUserID),
				ctx.Request().Header.Get(HeaderUserEmail),
			)
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, "Missing or invalid caller identity", kindUnauthenticated)
			}
			ctx.Set(identityKey, id)
			return next(ctx)
		}
	}
}

// identityFrom is only valid behind IdentityMiddleware.
func identityFrom(ctx echo.Context) kernel.Identity {
	id, _ := ctx.Get(identityKey).(kernel.Identity)
	return id
}
