package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// RevisionHandler handles budget-revision HTTP requests
type RevisionHandler struct {
	revisionService *service.RevisionService
}

// NewRevisionHandler creates a new RevisionHandler
func NewRevisionHandler(revisionService *service.RevisionService) *RevisionHandler {
	return &RevisionHandler{revisionService: revisionService}
}

// CreateRevisionRequest represents the create revision request body. The
// inflow and outflow lists fully replace the base catalogue from the
// effective date onward.
type CreateRevisionRequest struct {
	EffectiveDate string        `json:"effectiveDate"`
	Inflows       []ItemRequest `json:"inflows"`
	Outflows      []ItemRequest `json:"outflows"`
}

// RevisionResponse represents a budget revision in API responses
type RevisionResponse struct {
	ID            string         `json:"id"`
	EffectiveDate string         `json:"effectiveDate"`
	Inflows       []ItemResponse `json:"inflows"`
	Outflows      []ItemResponse `json:"outflows"`
	CreatedAt     string         `json:"createdAt"`
}

// CreateRevision handles POST /api/v1/revisions
func (h *RevisionHandler) CreateRevision(c echo.Context) error {
	var req CreateRevisionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	effectiveDate, err := time.Parse(time.DateOnly, req.EffectiveDate)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "effectiveDate", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	inflows, verr := revisionItems(req.Inflows, domain.DirectionInflow)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}
	outflows, verr := revisionItems(req.Outflows, domain.DirectionOutflow)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	revision, err := h.revisionService.CreateRevision(service.CreateRevisionInput{
		EffectiveDate: effectiveDate,
		Inflows:       inflows,
		Outflows:      outflows,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "effectiveDate", Message: "Effective date is required"},
			})
		}
		log.Error().Err(err).Msg("Failed to create revision")
		return NewInternalError(c, "Failed to create revision")
	}

	log.Info().Str("revision_id", revision.ID.String()).Str("effective_date", req.EffectiveDate).Msg("Budget revision created")
	return c.JSON(http.StatusCreated, toRevisionResponse(revision))
}

// GetRevisions handles GET /api/v1/revisions
func (h *RevisionHandler) GetRevisions(c echo.Context) error {
	revisions, err := h.revisionService.GetRevisions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get revisions")
		return NewInternalError(c, "Failed to get revisions")
	}

	response := make([]RevisionResponse, len(revisions))
	for i, revision := range revisions {
		response[i] = toRevisionResponse(revision)
	}
	return c.JSON(http.StatusOK, response)
}

// GetRevision handles GET /api/v1/revisions/:id
func (h *RevisionHandler) GetRevision(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid revision ID", nil)
	}

	revision, err := h.revisionService.GetRevisionByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrRevisionNotFound) {
			return NewNotFoundError(c, "Revision not found")
		}
		log.Error().Err(err).Str("revision_id", id.String()).Msg("Failed to get revision")
		return NewInternalError(c, "Failed to get revision")
	}
	return c.JSON(http.StatusOK, toRevisionResponse(revision))
}

// DeleteRevision handles DELETE /api/v1/revisions/:id
func (h *RevisionHandler) DeleteRevision(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid revision ID", nil)
	}

	if err := h.revisionService.DeleteRevision(id); err != nil {
		if errors.Is(err, domain.ErrRevisionNotFound) {
			return NewNotFoundError(c, "Revision not found")
		}
		log.Error().Err(err).Str("revision_id", id.String()).Msg("Failed to delete revision")
		return NewInternalError(c, "Failed to delete revision")
	}

	log.Info().Str("revision_id", id.String()).Msg("Budget revision deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper functions

// revisionItems converts embedded item requests into domain items. The
// direction comes from which list the item sits in, not the payload.
func revisionItems(reqs []ItemRequest, direction domain.Direction) ([]domain.RecurringItem, *ValidationError) {
	items := make([]domain.RecurringItem, 0, len(reqs))
	for _, req := range reqs {
		req.Direction = string(direction)
		input, verr := itemInputFromRequest(req)
		if verr != nil {
			return nil, verr
		}
		items = append(items, domain.RecurringItem{
			ID:            uuid.New(),
			Description:   input.Description,
			Amount:        input.Amount,
			Direction:     input.Direction,
			Account:       input.Account,
			Frequency:     input.Frequency,
			DayOfMonth:    input.DayOfMonth,
			Weekday:       input.Weekday,
			ReferenceDate: input.ReferenceDate,
			MonthOfYear:   input.MonthOfYear,
			Flexibility:   input.Flexibility,
		})
	}
	return items, nil
}

func toRevisionResponse(revision *domain.BudgetRevision) RevisionResponse {
	inflows := make([]ItemResponse, len(revision.Inflows))
	for i := range revision.Inflows {
		inflows[i] = toItemResponse(&revision.Inflows[i])
	}
	outflows := make([]ItemResponse, len(revision.Outflows))
	for i := range revision.Outflows {
		outflows[i] = toItemResponse(&revision.Outflows[i])
	}
	return RevisionResponse{
		ID:            revision.ID.String(),
		EffectiveDate: revision.EffectiveDate.Format(time.DateOnly),
		Inflows:       inflows,
		Outflows:      outflows,
		CreatedAt:     revision.CreatedAt.Format(time.RFC3339),
	}
}
