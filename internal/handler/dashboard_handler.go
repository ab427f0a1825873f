package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prospera-app/prospera-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetUpcoming handles GET /api/v1/dashboard/upcoming
//
// Query params: days (default 30).
func (h *DashboardHandler) GetUpcoming(c echo.Context) error {
	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, verr := parseDaysParam(raw)
		if verr != nil {
			return NewValidationError(c, "Invalid query", []ValidationError{*verr})
		}
		days = parsed
	}

	upcoming, err := h.dashboardService.UpcomingActivity(days)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get upcoming activity")
		return NewInternalError(c, "Failed to get upcoming activity")
	}

	return c.JSON(http.StatusOK, upcoming)
}
