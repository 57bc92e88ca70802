package http

import (
	"errors"
	"net/http"

	"dispatch/internal/adapters/out/eventhub"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/product"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Machine-readable error kinds carried in the "error" field.
const (
	kindValidation           = "validation"
	kindUnauthenticated      = "unauthenticated"
	kindUnauthorized         = "unauthorized"
	kindNotFound             = "not_found"
	kindInsufficientStock    = "insufficient_stock"
	kindInvalidTransition    = "invalid_transition"
	kindActiveDeliveryExists = "active_delivery_exists"
	kindUnavailable          = "unavailable"
	kindInternal             = "internal"
)

// handleError maps domain and validation errors to a response. Domain
// sentinels are checked before the generic validation family.
func handleError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, assignment.ErrUnauthorized):
		return writeError(ctx, http.StatusForbidden, err.Error(), kindUnauthorized)
	case errors.Is(err, product.ErrInsufficientStock):
		return writeError(ctx, http.StatusConflict, err.Error(), kindInsufficientStock)
	case errors.Is(err, assignment.ErrInvalidTransition):
		return writeError(ctx, http.StatusConflict, err.Error(), kindInvalidTransition)
	case errors.Is(err, assignment.ErrActiveDeliveryExists):
		return writeError(ctx, http.StatusConflict, err.Error(), kindActiveDeliveryExists)
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error(), kindNotFound)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, err.Error(), kindValidation)
	case errors.Is(err, eventhub.ErrHubClosed):
		return writeError(ctx, http.StatusServiceUnavailable, err.Error(), kindUnavailable)
	}

	ctx.Logger().Errorf("request failed: %v", err)
	return writeError(ctx, http.StatusInternalServerError, "Internal server error", kindInternal)
}

func writeError(ctx echo.Context, code int, message, kind string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
		Error:   &kind,
	})
}
