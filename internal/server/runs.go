package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pepo-gtm/pepo/internal/agent/core"
	"github.com/pepo-gtm/pepo/internal/store"
)

// RunsHandler serves the run archive and triggers new workflow runs.
type RunsHandler struct {
	Archive store.Archive
	Index   *store.Index
	Runner  WorkflowRunner
}

func (h *RunsHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/:id", h.get)
	g.POST("", h.create)
}

func (h *RunsHandler) list(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	runs, err := h.Archive.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []store.RunRecord{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *RunsHandler) get(c echo.Context) error {
	rec, err := h.Archive.GetRun(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RunsHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter required")
	}
	if h.Index == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search index not configured")
	}
	hits, err := h.Index.SearchRuns(q, 20)
	if err != nil {
		return err
	}
	if hits == nil {
		hits = []store.RunHit{}
	}
	return c.JSON(http.StatusOK, hits)
}

func (h *RunsHandler) create(c echo.Context) error {
	if h.Runner == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "workflow runner not configured")
	}
	var spec core.WorkflowSpec
	if err := c.Bind(&spec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid workflow spec: "+err.Error())
	}
	if spec.Goal == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "goal is required")
	}

	result, err := h.Runner.Run(c.Request().Context(), spec)
	if err != nil {
		return err
	}

	rec, err := store.RecordFromResult(&result)
	if err != nil {
		return err
	}
	if err := h.Archive.SaveRun(c.Request().Context(), rec); err != nil {
		return err
	}
	if h.Index != nil {
		_ = h.Index.IndexRun(rec)
	}
	return c.JSON(http.StatusCreated, result)
}
