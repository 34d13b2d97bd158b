package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount json.RawMessage `json:"target_amount"`
	SavedAmount  json.RawMessage `json:"saved_amount,omitempty"`
	TargetDate   *string         `json:"target_date,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

// UpdateGoalRequest represents a partial goal update; omitted fields keep their value
type UpdateGoalRequest struct {
	Name         *string         `json:"name,omitempty"`
	TargetAmount json.RawMessage `json:"target_amount,omitempty"`
	SavedAmount  json.RawMessage `json:"saved_amount,omitempty"`
	TargetDate   *string         `json:"target_date,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrs []ValidationError
	if strings.TrimSpace(req.Name) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "name", Message: "Name is required"})
	}

	target, err := parseDecimal(req.TargetAmount)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "target_amount", Message: "Target amount must be a valid decimal number"})
	}

	saved, err := parseDecimal(req.SavedAmount)
	if errors.Is(err, errMissing) {
		saved = decimal.Zero
	} else if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "saved_amount", Message: "Saved amount must be a valid decimal number"})
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "target_date", Message: "Invalid date format, use YYYY-MM-DD"})
	}

	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), service.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: target,
		SavedAmount:  saved,
		TargetDate:   targetDate,
		Description:  req.Description,
	})
	if err != nil {
		return handleServiceError(c, err, "create goal")
	}

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	goals, err := h.goalService.GetGoals(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "get goals")
	}
	return c.JSON(http.StatusOK, toGoalResponses(goals))
}

// GetGoal handles GET /api/v1/goals/:id
func (h *GoalHandler) GetGoal(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoalByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get goal")
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal handles PUT /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrs []ValidationError
	update := domain.GoalUpdate{Name: req.Name, Description: req.Description}

	var err error
	if update.TargetAmount, err = parseOptionalDecimal(req.TargetAmount); err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "target_amount", Message: "Target amount must be a valid decimal number"})
	}
	if update.SavedAmount, err = parseOptionalDecimal(req.SavedAmount); err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "saved_amount", Message: "Saved amount must be a valid decimal number"})
	}
	if update.TargetDate, err = parseOptionalDate(req.TargetDate); err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "target_date", Message: "Invalid date format, use YYYY-MM-DD"})
	}
	// An explicit empty string removes the target date
	update.ClearTargetDate = req.TargetDate != nil && strings.TrimSpace(*req.TargetDate) == ""
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), id, update)
	if err != nil {
		return handleServiceError(c, err, "update goal")
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}
