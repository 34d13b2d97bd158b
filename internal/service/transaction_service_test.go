package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvaluator struct {
	evaluated []*domain.Transaction
}

func (r *recordingEvaluator) EvaluateTransaction(_ context.Context, tx *domain.Transaction) {
	r.evaluated = append(r.evaluated, tx)
}

func newTestTransactionService() (*TransactionService, *testutil.MockTransactionRepository) {
	repo := testutil.NewMockTransactionRepository()
	svc := NewTransactionService(repo)
	svc.now = fixedClock
	return svc, repo
}

func TestCreateTransaction_Success(t *testing.T) {
	svc, _ := newTestTransactionService()
	publisher := testutil.NewMockEventPublisher()
	evaluator := &recordingEvaluator{}
	svc.SetEventPublisher(publisher)
	svc.SetEvaluator(evaluator)

	date := day(2025, time.March, 3)
	desc := "  Weekly shop "
	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Amount:      dec("45.00"),
		Category:    " groceries ",
		Type:        domain.TransactionTypeExpense,
		Description: &desc,
		Date:        &date,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), tx.ID)
	assert.Equal(t, "groceries", tx.Category)
	assert.Equal(t, "Weekly shop", *tx.Description)
	assert.True(t, tx.SignedAmount().Equal(dec("-45")))
	assert.Equal(t, []string{"transaction.created"}, publisher.Types())
	require.Len(t, evaluator.evaluated, 1)
	assert.Equal(t, tx.ID, evaluator.evaluated[0].ID)
}

func TestCreateTransaction_StoresMagnitude(t *testing.T) {
	svc, _ := newTestTransactionService()

	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Amount:   dec("-30"),
		Category: "fuel",
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	assert.True(t, tx.Amount.Equal(dec("30")))
	assert.True(t, tx.SignedAmount().Equal(dec("-30")))
}

func TestCreateTransaction_DefaultsDateToToday(t *testing.T) {
	svc, _ := newTestTransactionService()

	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Amount:   dec("10"),
		Category: "coffee",
		Type:     domain.TransactionTypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 15), tx.Date)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateTransactionInput
		expected error
	}{
		{"zero amount", CreateTransactionInput{Amount: dec("0"), Category: "food", Type: domain.TransactionTypeExpense}, domain.ErrInvalidAmount},
		{"bad type", CreateTransactionInput{Amount: dec("1"), Category: "food", Type: "TRANSFER"}, domain.ErrInvalidTransactionType},
		{"blank category", CreateTransactionInput{Amount: dec("1"), Category: "   ", Type: domain.TransactionTypeIncome}, domain.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestTransactionService()
			evaluator := &recordingEvaluator{}
			svc.SetEvaluator(evaluator)

			_, err := svc.CreateTransaction(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, repo.Transactions)
			assert.Empty(t, evaluator.evaluated)
		})
	}
}

func TestCreateTransaction_RepositoryError(t *testing.T) {
	svc, repo := newTestTransactionService()
	boom := errors.New("connection reset")
	repo.CreateFn = func(*domain.Transaction) (*domain.Transaction, error) { return nil, boom }
	evaluator := &recordingEvaluator{}
	svc.SetEvaluator(evaluator)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Amount: dec("5"), Category: "food", Type: domain.TransactionTypeExpense,
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, evaluator.evaluated)
}

func TestGetTransactions_FilterAndStableSort(t *testing.T) {
	svc, repo := newTestTransactionService()
	repo.AddTransaction(expense("50", "food", day(2025, time.March, 2)))
	repo.AddTransaction(income("50", "salary", day(2025, time.March, 1)))
	repo.AddTransaction(expense("20", "coffee", day(2025, time.March, 2)))
	repo.AddTransaction(expense("50", "rent", day(2025, time.March, 3)))

	ctx := context.Background()

	all, err := svc.GetTransactions(ctx, &domain.TransactionFilters{SortBy: domain.SortAmount, Order: domain.SortDesc})
	require.NoError(t, err)
	// Equal amounts keep insertion order
	assert.Equal(t, []int64{1, 2, 4, 3}, ids(all))

	expenses, err := svc.GetTransactions(ctx, &domain.TransactionFilters{Type: domain.TypeFilterExpense, SortBy: domain.SortDate, Order: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, ids(expenses))

	unsorted, err := svc.GetTransactions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(unsorted))
}

func TestGetTransactions_InvalidRange(t *testing.T) {
	svc, _ := newTestTransactionService()
	start := day(2025, time.April, 1)
	end := day(2025, time.March, 1)

	_, err := svc.GetTransactions(context.Background(), &domain.TransactionFilters{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func ids(txs []*domain.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
