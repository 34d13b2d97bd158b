package service

import (
	"context"
	"testing"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBudgetService() (*BudgetService, *testutil.MockBudgetRepository, *testutil.MockTransactionRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewBudgetService(budgetRepo, transactionRepo)
	svc.now = fixedClock
	return svc, budgetRepo, transactionRepo
}

func TestGetBudgets_ThresholdScenario(t *testing.T) {
	svc, budgetRepo, transactionRepo := newTestBudgetService()
	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Category: "Food", MonthlyLimit: dec("500"), AlertThreshold: dec("0.8")})

	transactionRepo.AddTransaction(expense("400", "food", day(2025, time.March, 2)))
	transactionRepo.AddTransaction(expense("20", " FOOD ", day(2025, time.March, 14)))
	// Excluded: previous month, income, other category
	transactionRepo.AddTransaction(expense("300", "food", day(2025, time.February, 28)))
	transactionRepo.AddTransaction(income("1000", "food", day(2025, time.March, 5)))
	transactionRepo.AddTransaction(expense("75", "rent", day(2025, time.March, 5)))

	budgets, err := svc.GetBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	b := budgets[0]
	assert.Equal(t, "420", b.SpentThisMonth.String())
	assert.Equal(t, "0.84", b.BudgetUsedPercentage.String())
	assert.Equal(t, "80", b.RemainingBudget.String())
	assert.True(t, b.IsOverThreshold)
	assert.False(t, b.IsExceeded)
	assert.True(t, b.RemainingBudget.Add(b.SpentThisMonth).Equal(b.MonthlyLimit))
}

func TestGetBudgets_NoSpending(t *testing.T) {
	svc, budgetRepo, _ := newTestBudgetService()
	budgetRepo.AddBudget(&domain.Budget{Name: "Fun", Category: "entertainment", MonthlyLimit: dec("50"), AlertThreshold: dec("0.7")})

	budgets, err := svc.GetBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].SpentThisMonth.IsZero())
	assert.True(t, budgets[0].BudgetUsedPercentage.IsZero())
	assert.False(t, budgets[0].IsOverThreshold)
}

func TestCreateBudget_Success(t *testing.T) {
	svc, _, transactionRepo := newTestBudgetService()
	publisher := testutil.NewMockEventPublisher()
	svc.SetEventPublisher(publisher)
	transactionRepo.AddTransaction(expense("30", "transport", day(2025, time.March, 1)))

	status, err := svc.CreateBudget(context.Background(), CreateBudgetInput{
		Name:           " Transport ",
		Category:       "transport",
		MonthlyLimit:   dec("120"),
		AlertThreshold: dec("0.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Transport", status.Name)
	assert.Equal(t, "0.25", status.BudgetUsedPercentage.String())
	assert.Equal(t, []string{"budget.created"}, publisher.Types())
}

func TestCreateBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateBudgetInput
		expected error
	}{
		{"missing name", CreateBudgetInput{Category: "food", MonthlyLimit: dec("10"), AlertThreshold: dec("0.5")}, domain.ErrNameRequired},
		{"missing category", CreateBudgetInput{Name: "Food", MonthlyLimit: dec("10"), AlertThreshold: dec("0.5")}, domain.ErrCategoryRequired},
		{"zero limit", CreateBudgetInput{Name: "Food", Category: "food", MonthlyLimit: dec("0"), AlertThreshold: dec("0.5")}, domain.ErrInvalidMonthlyLimit},
		{"threshold above one", CreateBudgetInput{Name: "Food", Category: "food", MonthlyLimit: dec("10"), AlertThreshold: dec("1.2")}, domain.ErrInvalidAlertThreshold},
		{"zero threshold", CreateBudgetInput{Name: "Food", Category: "food", MonthlyLimit: dec("10"), AlertThreshold: dec("0")}, domain.ErrInvalidAlertThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, budgetRepo, _ := newTestBudgetService()
			_, err := svc.CreateBudget(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, budgetRepo.Budgets)
		})
	}
}

func TestUpdateBudget_Partial(t *testing.T) {
	svc, budgetRepo, transactionRepo := newTestBudgetService()
	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Category: "food", MonthlyLimit: dec("500"), AlertThreshold: dec("0.8")})
	transactionRepo.AddTransaction(expense("450", "food", day(2025, time.March, 10)))

	limit := dec("400")
	status, err := svc.UpdateBudget(context.Background(), 1, UpdateBudgetInput{MonthlyLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, "Food", status.Name)
	assert.True(t, status.IsExceeded)
	assert.Equal(t, "-50", status.RemainingBudget.String())
}

func TestUpdateBudget_InvalidLeavesBudgetUnchanged(t *testing.T) {
	svc, budgetRepo, _ := newTestBudgetService()
	budgetRepo.AddBudget(&domain.Budget{Name: "Food", Category: "food", MonthlyLimit: dec("500"), AlertThreshold: dec("0.8")})

	threshold := dec("1.5")
	_, err := svc.UpdateBudget(context.Background(), 1, UpdateBudgetInput{AlertThreshold: &threshold})
	assert.ErrorIs(t, err, domain.ErrInvalidAlertThreshold)

	stored, err := budgetRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "0.8", stored.AlertThreshold.String())
}

func TestGetBudgetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestBudgetService()
	_, err := svc.GetBudgetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)

	name := "x"
	_, err = svc.UpdateBudget(context.Background(), 99, UpdateBudgetInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}
