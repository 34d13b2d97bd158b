package memory

import (
	"context"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository in memory
type BudgetRepository struct {
	mu     sync.RWMutex
	items  []*domain.Budget
	nextID int64
	now    func() time.Time
}

// NewBudgetRepository creates an empty BudgetRepository
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{nextID: 1, now: time.Now}
}

// Create stores a copy of budget and assigns its ID
func (r *BudgetRepository) Create(_ context.Context, budget *domain.Budget) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *budget
	stored.ID = r.nextID
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.items = append(r.items, &stored)

	out := stored
	return &out, nil
}

// GetByID retrieves a budget by its ID
func (r *BudgetRepository) GetByID(_ context.Context, id int64) (*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.find(id); b != nil {
		out := *b
		return &out, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// List returns all budgets ordered by ID
func (r *BudgetRepository) List(_ context.Context) ([]*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Budget, 0, len(r.items))
	for _, b := range r.items {
		out := *b
		result = append(result, &out)
	}
	return result, nil
}

// FindByCategory returns the oldest budget tracking category
func (r *BudgetRepository) FindByCategory(_ context.Context, category string) (*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if domain.SameCategory(b.Category, category) {
			out := *b
			return &out, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// Update applies fn to a copy of the budget under the write lock and stores it if fn succeeds
func (r *BudgetRepository) Update(_ context.Context, id int64, fn func(*domain.Budget) error) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.find(id)
	if current == nil {
		return nil, domain.ErrBudgetNotFound
	}

	working := *current
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = current.ID
	working.CreatedAt = current.CreatedAt
	working.UpdatedAt = r.now().UTC()
	*current = working

	out := working
	return &out, nil
}

func (r *BudgetRepository) find(id int64) *domain.Budget {
	for _, b := range r.items {
		if b.ID == id {
			return b
		}
	}
	return nil
}
