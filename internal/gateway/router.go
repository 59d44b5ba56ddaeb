// Package gateway wires the people-management HTTP surface: authentication
// middleware, authorization policies, and the outbound identity client.
package gateway

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/peoplecore/identity-system/internal/api"
	apihandler "github.com/peoplecore/identity-system/internal/api/handler"
	"github.com/peoplecore/identity-system/internal/gateway/client"
	"github.com/peoplecore/identity-system/internal/gateway/handler"
	"github.com/peoplecore/identity-system/internal/gateway/middleware"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	"github.com/peoplecore/identity-system/pkg/logger"
)

// NewRouter builds and returns the gateway's Echo instance.
func NewRouter(cfg *config.GatewayConfig) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = apihandler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Dependencies ---
	identity := client.NewHTTPClient(cfg.IdentityURL, cfg.IdentityTimeout, log)
	people := handler.NewPeopleHandler(identity, log)
	roles := handler.NewRoleHandler(identity, log)
	health := handler.NewHealthHandler(identity)
	auth := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/api/people/signin", people.SignIn)

	// --- Authenticated routes ---
	g := e.Group("/api/people", auth)
	g.POST("/signup", people.SignUp)
	g.GET("/me", people.MeInfo)
	g.GET("/all-users", people.AllUsers)
	g.PUT("/update-user", people.UpdateUser)
	g.DELETE("/delete-user/:id", people.DeleteUser)
	g.POST("/reset-password", people.ResetPassword)

	g.GET("/roles", roles.AllRoles)
	g.POST("/roles", roles.CreateRole)
	g.PUT("/roles/:id", roles.UpdateRole)
	g.DELETE("/roles/:id", roles.DeleteRole)
	g.GET("/user-roles/:userId", roles.UserRoles)
	g.POST("/assign-role", roles.AssignRole)

	g.GET("/:id", people.Info)

	// --- Health probes (no auth required) ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
