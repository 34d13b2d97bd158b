package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	MonthlyLimit   json.RawMessage `json:"monthly_limit"`
	AlertThreshold json.RawMessage `json:"alert_threshold"`
}

// UpdateBudgetRequest represents a partial budget update
type UpdateBudgetRequest struct {
	Name           *string         `json:"name,omitempty"`
	Category       *string         `json:"category,omitempty"`
	MonthlyLimit   json.RawMessage `json:"monthly_limit,omitempty"`
	AlertThreshold json.RawMessage `json:"alert_threshold,omitempty"`
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrs []ValidationError
	if strings.TrimSpace(req.Name) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "name", Message: "Name is required"})
	}
	if strings.TrimSpace(req.Category) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "category", Message: "Category is required"})
	}

	limit, err := parseDecimal(req.MonthlyLimit)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "monthly_limit", Message: "Monthly limit must be a valid decimal number"})
	}

	threshold, err := parseDecimal(req.AlertThreshold)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "alert_threshold", Message: "Alert threshold must be a valid decimal number"})
	}

	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	budget, err := h.budgetService.CreateBudget(c.Request().Context(), service.CreateBudgetInput{
		Name:           req.Name,
		Category:       req.Category,
		MonthlyLimit:   limit,
		AlertThreshold: threshold,
	})
	if err != nil {
		return handleServiceError(c, err, "create budget")
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetBudgets(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "get budgets")
	}
	return c.JSON(http.StatusOK, toBudgetResponses(budgets))
}

// GetBudget handles GET /api/v1/budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get budget")
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrs []ValidationError
	var limit, threshold *decimal.Decimal
	var err error
	if limit, err = parseOptionalDecimal(req.MonthlyLimit); err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "monthly_limit", Message: "Monthly limit must be a valid decimal number"})
	}
	if threshold, err = parseOptionalDecimal(req.AlertThreshold); err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "alert_threshold", Message: "Alert threshold must be a valid decimal number"})
	}
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	budget, err := h.budgetService.UpdateBudget(c.Request().Context(), id, service.UpdateBudgetInput{
		Name:           req.Name,
		Category:       req.Category,
		MonthlyLimit:   limit,
		AlertThreshold: threshold,
	})
	if err != nil {
		return handleServiceError(c, err, "update budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}
