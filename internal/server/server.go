package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/agent/core"
	"github.com/pepo-gtm/pepo/internal/agent/telemetry"
	"github.com/pepo-gtm/pepo/internal/profile"
	"github.com/pepo-gtm/pepo/internal/store"
)

// WorkflowRunner executes a workflow spec end to end. Implemented by the
// agent; faked in handler tests.
type WorkflowRunner interface {
	Run(ctx context.Context, spec core.WorkflowSpec) (core.WorkflowResult, error)
}

// Deps carries everything the HTTP API needs.
type Deps struct {
	Config    *config.Config
	Archive   store.Archive
	Index     *store.Index
	Runner    WorkflowRunner
	Profiles  *profile.Store
	Planner   *profile.DailyPlanner
	Telemetry *telemetry.Telemetry
}

// New builds the echo instance with all routes registered.
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	origins := []string{"*"}
	if deps.Config != nil && len(deps.Config.Server.AllowedOrigins) > 0 {
		origins = deps.Config.Server.AllowedOrigins
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	api.GET("/telemetry", func(c echo.Context) error {
		if deps.Telemetry == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "telemetry not enabled")
		}
		return c.JSON(http.StatusOK, deps.Telemetry.Snapshot())
	})

	rh := &RunsHandler{Archive: deps.Archive, Index: deps.Index, Runner: deps.Runner}
	rh.Register(api.Group("/runs"))

	ph := &ProfileHandler{Store: deps.Profiles, Planner: deps.Planner}
	ph.Register(api)

	return e
}
