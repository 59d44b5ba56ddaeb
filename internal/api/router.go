package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peoplecore/identity-system/docs"
	"github.com/peoplecore/identity-system/internal/api/handler"
	"github.com/peoplecore/identity-system/internal/core/service"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	mongostore "github.com/peoplecore/identity-system/internal/infrastructure/db/mongo"
	redisstore "github.com/peoplecore/identity-system/internal/infrastructure/db/redis"
	"github.com/peoplecore/identity-system/internal/infrastructure/security"
	"github.com/peoplecore/identity-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.IdentityConfig, audit handler.AuditSink) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userStore := mongostore.NewUserStore(db)
	roleStore := mongostore.NewRoleStore(db)
	hasher := security.NewBcryptHasher(security.DefaultCost)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisstore.NewSignInLimiter(rdb, cfg.MaxSignInFailures)

	users := service.NewUserManager(userStore, hasher, log)
	roles := service.NewRoleManager(roleStore, log)
	signIn := service.NewSignInPipeline(users, roles, issuer, log)

	userHandler := handler.NewUserHandler(users, roles, signIn, limiter, audit, cfg.DefaultRoleID, log)
	roleHandler := handler.NewRoleHandler(roles, log)

	// --- User routes ---
	userGroup := e.Group("/api/users")
	userGroup.POST("/signup", userHandler.SignUp)
	userGroup.POST("/signin", userHandler.SignIn)
	userGroup.POST("/reset-password", userHandler.ResetPassword)
	userGroup.PUT("/update-user", userHandler.UpdateUser)
	userGroup.DELETE("/delete-user/:id", userHandler.DeleteUser)
	userGroup.GET("/all-users", userHandler.AllUsers)
	userGroup.GET("/:id", userHandler.UserByID)

	// --- Role routes ---
	roleGroup := e.Group("/api/roles")
	roleGroup.GET("/all-roles", roleHandler.AllRoles)
	roleGroup.GET("/user-roles/:userId", roleHandler.UserRoles)
	roleGroup.POST("", roleHandler.CreateRole)
	roleGroup.POST("/assign", roleHandler.AssignRole)
	roleGroup.GET("/:id", roleHandler.RoleByID)
	roleGroup.PUT("/:id", roleHandler.UpdateRole)
	roleGroup.DELETE("/:id", roleHandler.DeleteRole)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
