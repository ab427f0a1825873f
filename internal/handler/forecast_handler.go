package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ForecastHandler handles projection HTTP requests
type ForecastHandler struct {
	forecastService *service.ForecastService
	goalService     *service.GoalService
	whatIfService   *service.WhatIfService
	exportService   *service.ExportService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(
	forecastService *service.ForecastService,
	goalService *service.GoalService,
	whatIfService *service.WhatIfService,
	exportService *service.ExportService,
) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		goalService:     goalService,
		whatIfService:   whatIfService,
		exportService:   exportService,
	}
}

// GetForecast handles GET /api/v1/forecast
//
// Query params: start (YYYY-MM-DD, default today), days (default 365).
func (h *ForecastHandler) GetForecast(c echo.Context) error {
	days, verr := parseDaysParam(c.QueryParam("days"))
	if verr != nil {
		return NewValidationError(c, "Invalid query", []ValidationError{*verr})
	}

	var (
		snapshots []domain.DaySnapshot
		err       error
	)
	if startParam := c.QueryParam("start"); startParam != "" {
		start, perr := time.Parse(time.DateOnly, startParam)
		if perr != nil {
			return NewValidationError(c, "Invalid query", []ValidationError{
				{Field: "start", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		snapshots, err = h.forecastService.Forecast(start, days)
	} else {
		snapshots, err = h.forecastService.ForecastFromToday(days)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build forecast")
		return NewInternalError(c, "Failed to build forecast")
	}

	return c.JSON(http.StatusOK, snapshots)
}

// GetGoalEstimate handles GET /api/v1/forecast/goal
//
// Query params: account, target (decimal), days (default 365).
func (h *ForecastHandler) GetGoalEstimate(c echo.Context) error {
	account := c.QueryParam("account")
	if account == "" {
		return NewValidationError(c, "Invalid query", []ValidationError{
			{Field: "account", Message: "Account is required"},
		})
	}

	target, err := decimal.NewFromString(c.QueryParam("target"))
	if err != nil {
		return NewValidationError(c, "Invalid query", []ValidationError{
			{Field: "target", Message: "Must be a valid decimal number"},
		})
	}

	days, verr := parseDaysParam(c.QueryParam("days"))
	if verr != nil {
		return NewValidationError(c, "Invalid query", []ValidationError{*verr})
	}

	estimate, err := h.goalService.EstimateGoalDate(account, target, days)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("account", account).Msg("Failed to estimate goal date")
		return NewInternalError(c, "Failed to estimate goal date")
	}

	return c.JSON(http.StatusOK, estimate)
}

// GetTrimSuggestions handles GET /api/v1/forecast/what-if
//
// Query params: days (default 365), trimPercent (default 10).
func (h *ForecastHandler) GetTrimSuggestions(c echo.Context) error {
	days, verr := parseDaysParam(c.QueryParam("days"))
	if verr != nil {
		return NewValidationError(c, "Invalid query", []ValidationError{*verr})
	}

	trimPercent := 10
	if raw := c.QueryParam("trimPercent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			return NewValidationError(c, "Invalid query", []ValidationError{
				{Field: "trimPercent", Message: "Must be an integer between 1 and 100"},
			})
		}
		trimPercent = n
	}

	suggestions, err := h.whatIfService.SuggestTrims(c.Request().Context(), time.Now(), days, trimPercent)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build trim suggestions")
		return NewInternalError(c, "Failed to build trim suggestions")
	}

	return c.JSON(http.StatusOK, suggestions)
}

// ExportForecast handles POST /api/v1/forecast/export
//
// Query params: start (YYYY-MM-DD, default today), days (default 365).
func (h *ForecastHandler) ExportForecast(c echo.Context) error {
	days, verr := parseDaysParam(c.QueryParam("days"))
	if verr != nil {
		return NewValidationError(c, "Invalid query", []ValidationError{*verr})
	}

	start := time.Now()
	if startParam := c.QueryParam("start"); startParam != "" {
		parsed, err := time.Parse(time.DateOnly, startParam)
		if err != nil {
			return NewValidationError(c, "Invalid query", []ValidationError{
				{Field: "start", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		start = parsed
	}

	result, err := h.exportService.ExportForecast(c.Request().Context(), start, days)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
				Type:     ErrorTypeInternal,
				Title:    "Export Unavailable",
				Status:   http.StatusServiceUnavailable,
				Detail:   "Export storage is not configured",
				Instance: c.Request().URL.Path,
			})
		}
		log.Error().Err(err).Msg("Failed to export forecast")
		return NewInternalError(c, "Failed to export forecast")
	}

	log.Info().Str("key", result.Key).Int("rows", result.Rows).Msg("Forecast exported")
	return c.JSON(http.StatusCreated, result)
}

func parseDaysParam(raw string) (int, *ValidationError) {
	if raw == "" {
		return service.DefaultHorizonDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: "days", Message: "Must be a positive integer"}
	}
	return n, nil
}
