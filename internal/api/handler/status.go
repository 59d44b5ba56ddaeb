package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/identity-system/internal/core/result"
)

// statusFor derives the HTTP status for a failed result from its message.
// The same derivation runs in the gateway, so both services answer a given
// Result the same way.
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

// respond writes the Result envelope with its derived HTTP status.
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
