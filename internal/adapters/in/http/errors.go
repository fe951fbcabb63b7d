package http

import (
	"errors"
	"net/http"

	"ordering/internal/adapters/in/http/api"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps error kinds to HTTP statuses: malformed input is 400, missing
// aggregates 404, lifecycle and version conflicts 409, and business rule
// rejections of a well formed request 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, order.ErrPaymentAlreadyLinked):
		return http.StatusConflict
	case errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrCheckoutNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error, internalMessage string) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), internalMessage,
			"error", err,
			"method", ctx.Request().Method,
			"path", ctx.Path())
		return ctx.JSON(status, api.Error{Code: status, Message: internalMessage})
	}
	return ctx.JSON(status, api.Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, api.Error{Code: http.StatusBadRequest, Message: message})
}
