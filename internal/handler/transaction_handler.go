package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description *string         `json:"description,omitempty"`
	Date        *string         `json:"date,omitempty"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrs []ValidationError

	amount, err := parseDecimal(req.Amount)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "amount", Message: amountMessage(err)})
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "type", Message: "Type must be INCOME or EXPENSE"})
	}

	if strings.TrimSpace(req.Category) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "category", Message: "Category is required"})
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "date", Message: "Invalid date format, use YYYY-MM-DD"})
	}

	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), service.CreateTransactionInput{
		Amount:      amount,
		Category:    req.Category,
		Type:        txType,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return handleServiceError(c, err, "create transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
//
// Query parameters: type (ALL, INCOME, EXPENSE), category, start, end,
// sort_by (date, amount) and order (asc, desc).
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, fieldErrs := parseTransactionFilters(c)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Invalid query parameters", fieldErrs)
	}

	transactions, err := h.transactionService.GetTransactions(c.Request().Context(), filters)
	if err != nil {
		return handleServiceError(c, err, "get transactions")
	}

	return c.JSON(http.StatusOK, toTransactionResponses(transactions))
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, []ValidationError) {
	filters := &domain.TransactionFilters{Type: domain.TypeFilterAll, Order: domain.SortAsc}
	var fieldErrs []ValidationError

	switch t := domain.TypeFilter(strings.ToUpper(c.QueryParam("type"))); t {
	case "", domain.TypeFilterAll:
	case domain.TypeFilterIncome, domain.TypeFilterExpense:
		filters.Type = t
	default:
		fieldErrs = append(fieldErrs, ValidationError{Field: "type", Message: "Type must be ALL, INCOME or EXPENSE"})
	}

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		filters.Category = &category
	}

	start, err := parseQueryDate(c, "start")
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "start", Message: "Invalid date format, use YYYY-MM-DD"})
	}
	filters.StartDate = start

	end, err := parseQueryDate(c, "end")
	if err != nil {
		fieldErrs = append(fieldErrs, ValidationError{Field: "end", Message: "Invalid date format, use YYYY-MM-DD"})
	}
	filters.EndDate = end

	switch s := domain.SortField(strings.ToLower(c.QueryParam("sort_by"))); s {
	case domain.SortNone, domain.SortDate, domain.SortAmount:
		filters.SortBy = s
	default:
		fieldErrs = append(fieldErrs, ValidationError{Field: "sort_by", Message: "Sort must be date or amount"})
	}

	switch o := domain.SortOrder(strings.ToLower(c.QueryParam("order"))); o {
	case "":
	case domain.SortAsc, domain.SortDesc:
		filters.Order = o
	default:
		fieldErrs = append(fieldErrs, ValidationError{Field: "order", Message: "Order must be asc or desc"})
	}

	return filters, fieldErrs
}
