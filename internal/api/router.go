package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/userhub/user-api/docs"
	"github.com/userhub/user-api/internal/api/handler"
	"github.com/userhub/user-api/internal/api/middleware"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/core/usecase"
)

const bodyLimit = "1M"

// Dependencies is everything the router needs from the composition root.
type Dependencies struct {
	Users ports.UserRepository
	Log   zerolog.Logger
	// ExposeErrors puts unexpected error text in 500 responses.
	ExposeErrors bool
	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.ExposeErrors)

	// --- Global middleware ---
	// Recover sits inside metrics and request logging so recovered panics are
	// counted and logged like any other 500.
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			deps.Log.Error().
				Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Bytes("stack", stack).
				Msg("panic recovered")
			return err
		},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(
		usecase.NewCreateUser(deps.Users, deps.Log),
		usecase.NewGetAllUsers(deps.Users, deps.Log),
		usecase.NewGetUserByID(deps.Users, deps.Log),
		deps.Log,
		deps.ExposeErrors,
	)

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
