package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fittracker/user-service/internal/api/handler"
	"github.com/fittracker/user-service/internal/core/service"
	mongodb "github.com/fittracker/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/fittracker/user-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	emailCache := redisdb.NewEmailCache(rdb)
	userService := service.NewUserService(userRepo, emailCache, log)
	userHandler := handler.NewUserHandler(userService)

	registerUserRoutes(e, userHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

// newEcho configures the bare Echo instance: middleware, validator, error
// handling, metrics endpoint.
func newEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("user_service"))

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// registerUserRoutes mounts the /v1/users surface. Static segments (simple,
// email, older) are registered alongside the :id parameter; Echo resolves
// static segments first.
func registerUserRoutes(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/v1/users")

	g.GET("", h.List)
	g.GET("/simple", h.ListSimple)
	g.GET("/email", h.ListByEmail)
	g.GET("/older/:date", h.ListOlderThan)
	g.GET("/:id", h.Get)
	g.GET("/simple/:id", h.GetSimple)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
