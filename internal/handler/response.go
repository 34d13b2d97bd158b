package handler

import (
	"errors"
	"net/http"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://budget-assist.app/errors/validation"
	ErrorTypeNotFound     = "https://budget-assist.app/errors/not-found"
	ErrorTypeUnauthorized = "https://budget-assist.app/errors/unauthorized"
	ErrorTypeInternal     = "https://budget-assist.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors maps domain validation errors to the request field they concern
var fieldErrors = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidAmount, "amount"},
	{domain.ErrInvalidTransactionType, "type"},
	{domain.ErrInvalidDate, "date"},
	{domain.ErrCategoryRequired, "category"},
	{domain.ErrCategoryTooLong, "category"},
	{domain.ErrNameRequired, "name"},
	{domain.ErrNameTooLong, "name"},
	{domain.ErrDescriptionTooLong, "description"},
	{domain.ErrInvalidMonthlyLimit, "monthly_limit"},
	{domain.ErrInvalidAlertThreshold, "alert_threshold"},
	{domain.ErrInvalidTargetAmount, "target_amount"},
	{domain.ErrInvalidSavedAmount, "saved_amount"},
	{domain.ErrInvalidDateRange, "start"},
	{domain.ErrDateRangeTooLarge, "end"},
	{domain.ErrInvalidWebhookURL, "url"},
}

var notFoundErrors = []error{
	domain.ErrTransactionNotFound,
	domain.ErrBudgetNotFound,
	domain.ErrGoalNotFound,
	domain.ErrNotificationNotFound,
	domain.ErrWebhookNotFound,
	domain.ErrNotFound,
}

// handleServiceError maps a service error to a Problem Details response.
// action completes the sentence "Failed to ..." for unexpected errors.
func handleServiceError(c echo.Context, err error, action string) error {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: fe.field, Message: fe.err.Error()},
			})
		}
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return NewNotFoundError(c, nf.Error())
		}
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}
