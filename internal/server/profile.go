package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pepo-gtm/pepo/internal/profile"
)

// ProfileHandler serves the business profile and daily plan.
type ProfileHandler struct {
	Store   *profile.Store
	Planner *profile.DailyPlanner
}

func (h *ProfileHandler) Register(api *echo.Group) {
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.GET("/daily-plan", h.getDailyPlan)
	api.POST("/daily-plan/generate", h.generateDailyPlan)
}

func (h *ProfileHandler) getProfile(c echo.Context) error {
	p, err := h.Store.LoadProfile()
	if errors.Is(err, profile.ErrNotOnboarded) {
		return echo.NewHTTPError(http.StatusNotFound, "not onboarded")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) putProfile(c echo.Context) error {
	var p profile.BusinessProfile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile: "+err.Error())
	}
	if err := p.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.Store.SaveProfile(&p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) getDailyPlan(c echo.Context) error {
	plan, err := h.Store.LoadDailyPlan()
	if errors.Is(err, profile.ErrNotOnboarded) {
		return echo.NewHTTPError(http.StatusNotFound, "no daily plan, onboard first")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *ProfileHandler) generateDailyPlan(c echo.Context) error {
	p, err := h.Store.LoadProfile()
	if errors.Is(err, profile.ErrNotOnboarded) {
		return echo.NewHTTPError(http.StatusNotFound, "not onboarded")
	}
	if err != nil {
		return err
	}
	if h.Planner == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "planner not configured")
	}
	plan, _ := h.Planner.GeneratePlan(c.Request().Context(), p)
	if err := h.Store.SaveDailyPlan(plan); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}
