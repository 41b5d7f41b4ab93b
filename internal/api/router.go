package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/accounts/account-service/internal/api/handler"
	"github.com/accounts/account-service/internal/api/middleware"
	"github.com/accounts/account-service/internal/core/ports"
)

const (
	metricsPath = "/metrics"
	bodyLimit   = "1M"
)

// Dependencies are the collaborators the router wires into handlers.
// Registerer and Gatherer default to the global Prometheus registry.
type Dependencies struct {
	Accounts   ports.AccountService
	Tokens     ports.TokenIssuer
	Log        zerolog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	auth    bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("router: http metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	// Metrics wrap the logger so they observe the status the error handler wrote.
	e.Use(httpMetrics)
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(middleware.SanitizeQuery())

	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Tokens)
	userHandler := handler.NewUserHandler()
	requireAuth := middleware.Auth(deps.Tokens)

	routes := []route{
		{http.MethodPost, "/auth/signup", authHandler.Signup, false},
		{http.MethodPost, "/auth/signin", authHandler.Signin, false},
		{http.MethodGet, "/users/me", userHandler.Me, true},
	}
	for _, r := range routes {
		if r.auth {
			e.Add(r.method, r.path, r.handler, requireAuth)
			continue
		}
		e.Add(r.method, r.path, r.handler)
	}

	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))

	return e, nil
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
