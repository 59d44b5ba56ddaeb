package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// IdentityPinger answers whether the upstream identity service is reachable.
type IdentityPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the gateway's probes: liveness answers immediately,
// readiness requires the identity service to be reachable.
type HealthHandler struct {
	identity IdentityPinger
}

func NewHealthHandler(identity IdentityPinger) *HealthHandler {
	return &HealthHandler{identity: identity}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.identity.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"identity": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"identity": "ok",
	})
}
