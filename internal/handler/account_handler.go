package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Template       string `json:"template"`
	CreditLimit    string `json:"creditLimit,omitempty"`
	InitialBalance string `json:"initialBalance,omitempty"`
}

// UpdateAccountRequest represents the update account request body
type UpdateAccountRequest struct {
	CreditLimit    string `json:"creditLimit,omitempty"`
	InitialBalance string `json:"initialBalance"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	Name           string  `json:"name"`
	AccountType    string  `json:"accountType"`
	Template       string  `json:"template"`
	CreditLimit    *string `json:"creditLimit,omitempty"`
	InitialBalance string  `json:"initialBalance"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	initialBalance, verr := parseDecimalField(req.InitialBalance, "initialBalance")
	if verr != nil {
		return NewValidationError(c, "Invalid initial balance", []ValidationError{*verr})
	}
	creditLimit, verr := parseOptionalDecimalField(req.CreditLimit, "creditLimit")
	if verr != nil {
		return NewValidationError(c, "Invalid credit limit", []ValidationError{*verr})
	}

	input := service.CreateAccountInput{
		Name:           req.Name,
		Template:       domain.AccountTemplate(req.Template),
		CreditLimit:    creditLimit,
		InitialBalance: initialBalance,
	}

	account, err := h.accountService.CreateAccount(input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidTemplate) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "template", Message: "Template must be one of: checking, savings, investment, credit, mortgage"},
			})
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			return NewConflictError(c, "An account with this name already exists")
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Str("name", account.Name).Str("template", string(account.Template)).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
	}
	return c.JSON(http.StatusOK, response)
}

// GetAccount handles GET /api/v1/accounts/:name
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.accountService.GetAccountByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("name", c.Param("name")).Msg("Failed to get account")
		return NewInternalError(c, "Failed to get account")
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateAccount handles PUT /api/v1/accounts/:name
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	name := c.Param("name")

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	initialBalance, verr := parseDecimalField(req.InitialBalance, "initialBalance")
	if verr != nil {
		return NewValidationError(c, "Invalid initial balance", []ValidationError{*verr})
	}
	creditLimit, verr := parseOptionalDecimalField(req.CreditLimit, "creditLimit")
	if verr != nil {
		return NewValidationError(c, "Invalid credit limit", []ValidationError{*verr})
	}

	account, err := h.accountService.UpdateAccount(name, service.UpdateAccountInput{
		CreditLimit:    creditLimit,
		InitialBalance: initialBalance,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to update account")
		return NewInternalError(c, "Failed to update account")
	}

	log.Info().Str("name", account.Name).Msg("Account updated")
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount handles DELETE /api/v1/accounts/:name
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	name := c.Param("name")

	if err := h.accountService.DeleteAccount(name); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account")
	}

	log.Info().Str("name", name).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper functions

func toAccountResponse(account *domain.Account) AccountResponse {
	resp := AccountResponse{
		Name:           account.Name,
		AccountType:    string(account.AccountType),
		Template:       string(account.Template),
		InitialBalance: account.InitialBalance.StringFixed(2),
		CreatedAt:      account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      account.UpdatedAt.Format(time.RFC3339),
	}
	if account.CreditLimit != nil {
		limit := account.CreditLimit.StringFixed(2)
		resp.CreditLimit = &limit
	}
	return resp
}

// parseDecimalField parses a required decimal field, defaulting to zero when
// empty.
func parseDecimalField(value, field string) (decimal.Decimal, *ValidationError) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: "Must be a valid decimal number"}
	}
	return d, nil
}

func parseOptionalDecimalField(value, field string) (*decimal.Decimal, *ValidationError) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "Must be a valid decimal number"}
	}
	return &d, nil
}
