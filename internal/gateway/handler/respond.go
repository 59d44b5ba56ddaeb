package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/identity-system/internal/core/result"
)

// statusFor mirrors the identity service's status derivation so an envelope
// forwarded through the gateway keeps the status it had at the source.
func statusFor(msg string) int {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unexpected"):
		return http.StatusInternalServerError
	case strings.Contains(lower, "not found"), strings.Contains(lower, "non existing"):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// respond re-wraps an identity service envelope with its derived status.
func respond[T any](c echo.Context, res result.Result[T]) error {
	if res.IsSuccess {
		return c.JSON(http.StatusOK, res)
	}
	return c.JSON(statusFor(res.Error), res)
}

// badRequest writes a failure envelope for malformed or invalid payloads.
func badRequest[T any](c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, result.Failure[T](msg))
}

// unauthorized rejects a self-access violation before any outbound call.
func unauthorized[T any](c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, result.Failure[T](msg))
}

// forbidden rejects a caller whose role claims do not satisfy the route.
func forbidden[T any](c echo.Context) error {
	return c.JSON(http.StatusForbidden, result.Failure[T]("You are not authorized to perform this action."))
}
