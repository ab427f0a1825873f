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

// ItemHandler handles recurring-item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRequest represents a recurring item in request bodies. Anchor fields
// are optional; whichever ones the frequency does not use are ignored.
type ItemRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Direction     string `json:"direction"`
	Account       string `json:"account"`
	Frequency     string `json:"frequency"`
	DayOfMonth    int    `json:"dayOfMonth,omitempty"`
	Weekday       *int   `json:"weekday,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
	MonthOfYear   *int   `json:"monthOfYear,omitempty"`
	Flexibility   string `json:"flexibility,omitempty"`
}

// ItemResponse represents a recurring item in API responses
type ItemResponse struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Direction     string `json:"direction"`
	Account       string `json:"account"`
	Frequency     string `json:"frequency"`
	DayOfMonth    int    `json:"dayOfMonth,omitempty"`
	Weekday       *int   `json:"weekday,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
	MonthOfYear   *int   `json:"monthOfYear,omitempty"`
	Flexibility   string `json:"flexibility,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// CreateItem handles POST /api/v1/items
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := itemInputFromRequest(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	item, err := h.itemService.CreateItem(input)
	if err != nil {
		return itemServiceError(c, err, "Failed to create item")
	}

	log.Info().Str("item_id", item.ID.String()).Str("description", item.Description).Msg("Recurring item created")
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// GetItems handles GET /api/v1/items
func (h *ItemHandler) GetItems(c echo.Context) error {
	items, err := h.itemService.GetItems()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get items")
		return NewInternalError(c, "Failed to get items")
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = toItemResponse(item)
	}
	return c.JSON(http.StatusOK, response)
}

// GetItem handles GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	item, err := h.itemService.GetItemByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Str("item_id", id.String()).Msg("Failed to get item")
		return NewInternalError(c, "Failed to get item")
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// UpdateItem handles PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := itemInputFromRequest(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	item, err := h.itemService.UpdateItem(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		return itemServiceError(c, err, "Failed to update item")
	}

	log.Info().Str("item_id", item.ID.String()).Msg("Recurring item updated")
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	if err := h.itemService.DeleteItem(id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Str("item_id", id.String()).Msg("Failed to delete item")
		return NewInternalError(c, "Failed to delete item")
	}

	log.Info().Str("item_id", id.String()).Msg("Recurring item deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper functions

func itemInputFromRequest(req ItemRequest) (service.ItemInput, *ValidationError) {
	amount, verr := parseDecimalField(req.Amount, "amount")
	if verr != nil {
		return service.ItemInput{}, verr
	}

	input := service.ItemInput{
		Description: req.Description,
		Amount:      amount,
		Direction:   domain.Direction(req.Direction),
		Account:     req.Account,
		Frequency:   domain.Frequency(req.Frequency),
		DayOfMonth:  req.DayOfMonth,
		Flexibility: domain.Flexibility(req.Flexibility),
	}
	if req.Weekday != nil {
		w := time.Weekday(*req.Weekday)
		input.Weekday = &w
	}
	if req.ReferenceDate != "" {
		ref, err := time.Parse(time.DateOnly, req.ReferenceDate)
		if err != nil {
			return service.ItemInput{}, &ValidationError{Field: "referenceDate", Message: "Must be a date in YYYY-MM-DD format"}
		}
		input.ReferenceDate = &ref
	}
	if req.MonthOfYear != nil {
		m := time.Month(*req.MonthOfYear)
		input.MonthOfYear = &m
	}
	return input, nil
}

func itemServiceError(c echo.Context, err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidDirection):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Direction must be inflow or outflow"},
		})
	default:
		log.Error().Err(err).Msg(detail)
		return NewInternalError(c, detail)
	}
}

func toItemResponse(item *domain.RecurringItem) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID.String(),
		Description: item.Description,
		Amount:      item.Amount.StringFixed(2),
		Direction:   string(item.Direction),
		Account:     item.Account,
		Frequency:   string(item.Frequency),
		DayOfMonth:  item.DayOfMonth,
		Flexibility: string(item.Flexibility),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
	if item.Weekday != nil {
		w := int(*item.Weekday)
		resp.Weekday = &w
	}
	if item.ReferenceDate != nil {
		resp.ReferenceDate = item.ReferenceDate.Format(time.DateOnly)
	}
	if item.MonthOfYear != nil {
		m := int(*item.MonthOfYear)
		resp.MonthOfYear = &m
	}
	return resp
}
