package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalError        = errors.New("internal error")
	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrCategoryRequired     = errors.New("category is required")
	ErrCategoryTooLong      = errors.New("category exceeds maximum length")
	ErrDescriptionTooLong   = errors.New("description exceeds maximum length")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrDateRangeTooLarge    = errors.New("date range exceeds maximum number of months")
	ErrInvalidWebhookURL    = errors.New("webhook url must be an absolute http(s) url")
	ErrWebhookNotFound      = errors.New("webhook not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxCategoryLength    = 100
	MaxDescriptionLength = 1000
)
