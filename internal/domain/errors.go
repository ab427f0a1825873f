package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternalError    = errors.New("internal error")
	ErrAccountNotFound  = errors.New("account not found")
	ErrItemNotFound     = errors.New("recurring item not found")
	ErrRevisionNotFound = errors.New("budget revision not found")
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name exceeds maximum length")
	ErrInvalidTemplate  = errors.New("invalid template")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDescriptionLength = 255
)
