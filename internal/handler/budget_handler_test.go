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

func newBudgetHandler() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockTransactionRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	txRepo := testutil.NewMockTransactionRepository()
	return NewBudgetHandler(service.NewBudgetService(budgetRepo, txRepo)), budgetRepo, txRepo
}

func TestCreateBudget_Success(t *testing.T) {
	handler, repo, _ := newBudgetHandler()

	c, rec := newContext(http.MethodPost, "/api/v1/budgets",
		`{"name": "Groceries", "category": "Food", "monthly_limit": 500, "alert_threshold": "0.8"}`)
	require.NoError(t, handler.CreateBudget(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[BudgetResponse](t, rec)
	assert.Equal(t, "Groceries", resp.Name)
	assert.Equal(t, 500.0, resp.MonthlyLimit)
	assert.Equal(t, 0.8, resp.AlertThreshold)
	assert.Equal(t, 0.0, resp.SpentThisMonth)
	assert.Equal(t, 0.0, resp.BudgetUsedPercentage)
	assert.Equal(t, 500.0, resp.RemainingBudget)
	assert.False(t, resp.IsOverThreshold)
	assert.Len(t, repo.Budgets, 1)
}

func TestCreateBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing everything", `{}`, []string{"name", "category", "monthly_limit", "alert_threshold"}},
		{"non-numeric limit", `{"name": "A", "category": "Food", "monthly_limit": "lots", "alert_threshold": 0.5}`, []string{"monthly_limit"}},
		{"zero limit", `{"name": "A", "category": "Food", "monthly_limit": 0, "alert_threshold": 0.5}`, []string{"monthly_limit"}},
		{"threshold above one", `{"name": "A", "category": "Food", "monthly_limit": 100, "alert_threshold": 1.5}`, []string{"alert_threshold"}},
		{"threshold too precise", `{"name": "A", "category": "Food", "monthly_limit": 100, "alert_threshold": 0.00001}`, []string{"alert_threshold"}},
		{"sub-cent limit", `{"name": "A", "category": "Food", "monthly_limit": 0.001, "alert_threshold": 0.5}`, []string{"monthly_limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo, _ := newBudgetHandler()

			c, rec := newContext(http.MethodPost, "/api/v1/budgets", tt.body)
			require.NoError(t, handler.CreateBudget(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.fields, fieldNames(decode[ProblemDetails](t, rec)))
			assert.Empty(t, repo.Budgets)
		})
	}
}

func TestGetBudgets_DerivedFields(t *testing.T) {
	handler, budgetRepo, txRepo := newBudgetHandler()
	budgetRepo.AddBudget(&domain.Budget{
		Name:           "Dining",
		Category:       "Food",
		MonthlyLimit:   decimal.NewFromInt(200),
		AlertThreshold: decimal.RequireFromString("0.75"),
	})
	txRepo.AddTransaction(&domain.Transaction{
		Amount:   decimal.NewFromInt(250),
		Category: "food",
		Type:     domain.TransactionTypeExpense,
		Date:     time.Now().UTC(),
	})

	c, rec := newContext(http.MethodGet, "/api/v1/budgets", "")
	require.NoError(t, handler.GetBudgets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]BudgetResponse](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, 250.0, resp[0].SpentThisMonth)
	assert.Equal(t, 1.25, resp[0].BudgetUsedPercentage)
	assert.Equal(t, -50.0, resp[0].RemainingBudget)
	assert.InDelta(t, resp[0].MonthlyLimit, resp[0].RemainingBudget+resp[0].SpentThisMonth, 1e-9)
	assert.True(t, resp[0].IsOverThreshold)
	assert.True(t, resp[0].IsExceeded)
}

func TestGetBudget_NotFound(t *testing.T) {
	handler, _, _ := newBudgetHandler()

	c, rec := newContext(http.MethodGet, "/api/v1/budgets/9", "")
	require.NoError(t, handler.GetBudget(withID(c, "9")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBudget_Partial(t *testing.T) {
	handler, budgetRepo, _ := newBudgetHandler()
	budgetRepo.AddBudget(&domain.Budget{
		ID:             1,
		Name:           "Dining",
		Category:       "Food",
		MonthlyLimit:   decimal.NewFromInt(200),
		AlertThreshold: decimal.RequireFromString("0.75"),
	})

	c, rec := newContext(http.MethodPut, "/api/v1/budgets/1", `{"monthly_limit": "300"}`)
	require.NoError(t, handler.UpdateBudget(withID(c, "1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[BudgetResponse](t, rec)
	assert.Equal(t, "Dining", resp.Name)
	assert.Equal(t, 300.0, resp.MonthlyLimit)
	assert.Equal(t, 0.75, resp.AlertThreshold)
}

func TestUpdateBudget_Invalid(t *testing.T) {
	handler, budgetRepo, _ := newBudgetHandler()
	budgetRepo.AddBudget(&domain.Budget{
		ID:             1,
		Name:           "Dining",
		Category:       "Food",
		MonthlyLimit:   decimal.NewFromInt(200),
		AlertThreshold: decimal.RequireFromString("0.75"),
	})

	c, rec := newContext(http.MethodPut, "/api/v1/budgets/1", `{"monthly_limit": -5}`)
	require.NoError(t, handler.UpdateBudget(withID(c, "1")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"monthly_limit"}, fieldNames(decode[ProblemDetails](t, rec)))
}
