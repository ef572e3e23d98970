package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	codeValidation         = "validation_error"
	codeNotFound           = "not_found"
	codeInvalidState       = "invalid_state"
	codeOptimizationFailed = "optimization_failed"
	codeInternal           = "internal_error"
)

// classify maps an application error to a status and a body code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest, codeInvalidState
	case errors.Is(err, ports.ErrOptimizationFailed):
		return http.StatusInternalServerError, codeOptimizationFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// fail writes err as a JSON error. Server-side failures are logged and
// their details kept out of the response.
func (s *Server) fail(ctx echo.Context, err error) error {
	status, code := classify(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = "Internal server error"
		if code == codeOptimizationFailed {
			message = "Route optimization failed"
		}
	}

	return ctx.JSON(status, servers.Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: codeValidation, Message: message})
}
