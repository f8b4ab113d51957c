package api

import (
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/aprovame/integrations-api/internal/api/handler"
	"github.com/aprovame/integrations-api/internal/api/middleware"
	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
	"github.com/aprovame/integrations-api/internal/infrastructure/http/handlers"
)

// Deps holds everything NewRouter wires into routes.
type Deps struct {
	Log      zerolog.Logger
	Verifier ports.TokenVerifier

	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Assignors *handler.AssignorHandler
	Payables  *handler.PayableHandler
	Readiness *handlers.ReadinessHandler

	// AssignorPublic serves the assignor routes without the access guard.
	AssignorPublic     bool
	LoginRatePerMinute int
	SentryEnabled      bool

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = serializer{}
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if d.SentryEnabled {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "integrations",
		Registerer: d.Registerer,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))

	// --- Probes, metrics, docs (no auth required) ---
	health := handlers.NewHealthHandler()
	e.GET("/health", health.Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/docs/*", echoSwagger.WrapHandler)

	auth := middleware.Auth(d.Verifier)
	g := e.Group("/integrations")

	g.POST("/auth", d.Auth.Login, middleware.LoginRateLimiter(d.LoginRatePerMinute))

	payable := g.Group("/payable", middleware.Guard(auth, domain.RoleAdmin, domain.RoleOperator)...)
	payable.POST("", d.Payables.Create)
	payable.GET("", d.Payables.List)
	payable.GET("/:id", d.Payables.Get)
	payable.PATCH("/:id", d.Payables.Update)
	payable.DELETE("/:id", d.Payables.Delete)

	var assignorGuard []echo.MiddlewareFunc
	if !d.AssignorPublic {
		assignorGuard = middleware.Guard(auth, domain.RoleAdmin, domain.RoleOperator)
	}
	assignor := g.Group("/assignor", assignorGuard...)
	assignor.POST("", d.Assignors.Create)
	assignor.GET("", d.Assignors.List)
	assignor.GET("/:id", d.Assignors.Get)
	assignor.PATCH("/:id", d.Assignors.Update)
	assignor.DELETE("/:id", d.Assignors.Delete)

	permissions := g.Group("/permissions", middleware.Guard(auth, domain.RoleAdmin)...)
	permissions.POST("", d.Users.Create)
	permissions.GET("", d.Users.List)
	permissions.GET("/:id", d.Users.Get)
	permissions.PATCH("/:id", d.Users.Update)
	permissions.DELETE("/:id", d.Users.Delete)

	return e
}
