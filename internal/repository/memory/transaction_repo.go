package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository in memory.
// Transactions are kept in insertion order.
type TransactionRepository struct {
	mu     sync.RWMutex
	items  []*domain.Transaction
	byID   map[int64]*domain.Transaction
	nextID int64
	now    func() time.Time
}

// NewTransactionRepository creates an empty TransactionRepository
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byID:   make(map[int64]*domain.Transaction),
		nextID: 1,
		now:    time.Now,
	}
}

// Create stores a copy of transaction and assigns its ID
func (r *TransactionRepository) Create(_ context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *transaction
	stored.ID = r.nextID
	stored.CreatedAt = r.now().UTC()
	r.nextID++

	r.items = append(r.items, &stored)
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	out := *tx
	return &out, nil
}

// List returns copies of matching transactions in insertion order
func (r *TransactionRepository) List(_ context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Transaction, 0, len(r.items))
	for _, tx := range r.items {
		if !filters.Matches(tx) {
			continue
		}
		out := *tx
		result = append(result, &out)
	}
	return result, nil
}

// SumExpensesByCategory sums EXPENSE amounts for category dated within [start, end]
func (r *TransactionRepository) SumExpensesByCategory(_ context.Context, category string, start, end time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category = strings.TrimSpace(category)
	total := decimal.Zero
	for _, tx := range r.items {
		if tx.Type != domain.TransactionTypeExpense || !domain.SameCategory(tx.Category, category) {
			continue
		}
		if tx.InRange(start, end) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}
