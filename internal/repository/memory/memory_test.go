package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	first, err := repo.Create(ctx, &domain.Transaction{Amount: decimal.NewFromInt(10), Category: "coffee", Type: domain.TransactionTypeExpense})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Transaction{Amount: decimal.NewFromInt(20), Category: "coffee", Type: domain.TransactionTypeExpense})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "20", got.Amount.String())

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionRepository_SumExpensesByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()
	dec := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	nov := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	for _, tx := range []*domain.Transaction{
		{Amount: decimal.NewFromInt(45), Category: "groceries", Type: domain.TransactionTypeExpense, Date: dec},
		{Amount: decimal.NewFromInt(15), Category: "Groceries", Type: domain.TransactionTypeExpense, Date: dec},
		{Amount: decimal.NewFromInt(99), Category: "groceries", Type: domain.TransactionTypeExpense, Date: nov},
		{Amount: decimal.NewFromInt(500), Category: "groceries", Type: domain.TransactionTypeIncome, Date: dec},
		{Amount: decimal.NewFromInt(12), Category: "coffee", Type: domain.TransactionTypeExpense, Date: dec},
	} {
		_, err := repo.Create(ctx, tx)
		require.NoError(t, err)
	}

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	total, err := repo.SumExpensesByCategory(ctx, "GROCERIES", start, end)

	require.NoError(t, err)
	assert.Equal(t, "60", total.String())
}

func TestGoalRepository_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository()
	goal, err := repo.Create(ctx, &domain.Goal{Name: "Fund", TargetAmount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, goal.ID, func(g *domain.Goal) error {
				g.SavedAmount = g.SavedAmount.Add(decimal.NewFromInt(2))
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", got.SavedAmount.String())
}

func TestGoalRepository_UpdateErrorLeavesGoalUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository()
	goal, err := repo.Create(ctx, &domain.Goal{Name: "Fund", TargetAmount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	_, err = repo.Update(ctx, goal.ID, func(g *domain.Goal) error {
		g.Name = "Changed"
		return domain.ErrInvalidTargetAmount
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetAmount)

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fund", got.Name)

	_, err = repo.Update(ctx, 42, func(g *domain.Goal) error { return nil })
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestBudgetRepository_FindByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()
	_, err := repo.Create(ctx, &domain.Budget{Name: "Groceries", Category: "groceries"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Budget{Name: "Groceries 2", Category: "Groceries"})
	require.NoError(t, err)

	b, err := repo.FindByCategory(ctx, " GROCERIES")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	_, err = repo.FindByCategory(ctx, "rent")
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}

func TestNotificationRepository_NewestFirstAndIdempotentRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &domain.Notification{Title: title})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)

	once, err := repo.MarkRead(ctx, 2)
	require.NoError(t, err)
	twice, err := repo.MarkRead(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.True(t, twice.Read)

	unread, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	count, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.MarkRead(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestWebhookRepository_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookRepository()

	hook, err := repo.Create(ctx, "https://example.com/hook")
	require.NoError(t, err)

	hooks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, hooks, 1)

	require.NoError(t, repo.Delete(ctx, hook.ID))
	assert.ErrorIs(t, repo.Delete(ctx, hook.ID), domain.ErrWebhookNotFound)
}
