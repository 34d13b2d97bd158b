package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryHandler() (*SummaryHandler, *testutil.MockTransactionRepository) {
	txRepo := testutil.NewMockTransactionRepository()
	budgetService := service.NewBudgetService(testutil.NewMockBudgetRepository(), txRepo)
	summaryService := service.NewSummaryService(txRepo, budgetService, testutil.NewMockGoalRepository())
	return NewSummaryHandler(summaryService), txRepo
}

func TestGetSummary_ExplicitRange(t *testing.T) {
	handler, txRepo := newSummaryHandler()
	seedTransaction(txRepo, "3000", "Salary", domain.TransactionTypeIncome, "2025-01-05")
	seedTransaction(txRepo, "1200", "Rent", domain.TransactionTypeExpense, "2025-01-06")
	seedTransaction(txRepo, "80", "Food", domain.TransactionTypeExpense, "2025-03-02")
	seedTransaction(txRepo, "999", "Food", domain.TransactionTypeExpense, "2024-12-31")

	c, rec := newContext(http.MethodGet, "/api/v1/summary?start=2025-01-01&end=2025-03-31", "")
	require.NoError(t, handler.GetSummary(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SummaryResponse](t, rec)
	assert.Equal(t, "2025-01-01", resp.Start)
	assert.Equal(t, "2025-03-31", resp.End)
	assert.Equal(t, 3000.0, resp.TotalIncome)
	assert.Equal(t, 1280.0, resp.TotalExpense)
	assert.Equal(t, 1720.0, resp.TotalBalance)
	assert.Equal(t, 3, resp.TransactionsCount)

	require.Len(t, resp.Monthly, 3)
	assert.Equal(t, MonthlyPointResponse{Month: "2025-02", Income: 0, Expense: 0}, resp.Monthly[1])

	require.Len(t, resp.ExpenseByCategory, 2)
	assert.Equal(t, "Rent", resp.ExpenseByCategory[0].Category)
}

func TestGetSummary_EmptyStoreReturnsArrays(t *testing.T) {
	handler, _ := newSummaryHandler()

	c, rec := newContext(http.MethodGet, "/api/v1/summary", "")
	require.NoError(t, handler.GetSummary(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[map[string]any](t, rec)
	assert.Equal(t, []any{}, resp["budgets"])
	assert.Equal(t, []any{}, resp["goals"])
	assert.Len(t, resp["monthly"], 12)
	assert.Equal(t, time.Now().Year(), parseYear(t, resp["start"].(string)))
}

func TestGetSummary_InvalidRange(t *testing.T) {
	handler, _ := newSummaryHandler()

	c, rec := newContext(http.MethodGet, "/api/v1/summary?start=2025-05-01&end=2025-01-01", "")
	require.NoError(t, handler.GetSummary(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"start"}, fieldNames(decode[ProblemDetails](t, rec)))
}

func TestGetSummary_MalformedDate(t *testing.T) {
	handler, _ := newSummaryHandler()

	c, rec := newContext(http.MethodGet, "/api/v1/summary?end=31-12-2025", "")
	require.NoError(t, handler.GetSummary(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"end"}, fieldNames(decode[ProblemDetails](t, rec)))
}

func TestGetFinancialChart(t *testing.T) {
	handler, txRepo := newSummaryHandler()
	txRepo.AddTransaction(&domain.Transaction{
		Amount:   decimal.RequireFromString("42.5"),
		Category: "Food",
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
	})

	c, rec := newContext(http.MethodGet, "/api/v1/summary/financial-chart?start=2025-01-01&end=2025-02-28", "")
	require.NoError(t, handler.GetFinancialChart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]MonthlyPointResponse](t, rec)
	assert.Equal(t, []MonthlyPointResponse{
		{Month: "2025-01"},
		{Month: "2025-02", Expense: 42.5},
	}, resp)
}

func parseYear(t *testing.T, date string) int {
	t.Helper()
	d, err := time.Parse(dateLayout, date)
	require.NoError(t, err)
	return d.Year()
}
