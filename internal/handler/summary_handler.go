package handler

import (
	"net/http"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the dashboard aggregates
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary handles GET /api/v1/summary?start=YYYY-MM-DD&end=YYYY-MM-DD
// Both bounds are optional and default to the current calendar year.
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	start, end, fieldErrs := parseDateRange(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid query parameters", fieldErrs)
	}

	summary, err := h.summaryService.GetSummary(c.Request().Context(), start, end)
	if err != nil {
		return handleServiceError(c, err, "get summary")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetFinancialChart handles GET /api/v1/summary/financial-chart
func (h *SummaryHandler) GetFinancialChart(c echo.Context) error {
	start, end, fieldErrs := parseDateRange(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid query parameters", fieldErrs)
	}

	points, err := h.summaryService.GetFinancialChart(c.Request().Context(), start, end)
	if err != nil {
		return handleServiceError(c, err, "get financial chart")
	}

	return c.JSON(http.StatusOK, toMonthlyPoints(points))
}

func parseDateRange(c echo.Context) (*time.Time, *time.Time, []ValidationError) {
	var fieldErrs []ValidationError
	start, err := parseQueryDate(c, "start")
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "start", Message: "Invalid date format, use YYYY-MM-DD"})
	}
	end, err := parseQueryDate(c, "end")
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "end", Message: "Invalid date format, use YYYY-MM-DD"})
	}
	return start, end, fieldErrs
}
