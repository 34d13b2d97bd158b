package memory

import (
	"context"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// GoalRepository implements domain.GoalRepository in memory
type GoalRepository struct {
	mu     sync.RWMutex
	items  []*domain.Goal
	nextID int64
	now    func() time.Time
}

// NewGoalRepository creates an empty GoalRepository
func NewGoalRepository() *GoalRepository {
	return &GoalRepository{nextID: 1, now: time.Now}
}

// Create stores a copy of goal and assigns its ID
func (r *GoalRepository) Create(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *goal
	stored.ID = r.nextID
	stored.CreatedAt = r.now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.items = append(r.items, &stored)

	out := stored
	return &out, nil
}

// GetByID retrieves a goal by its ID
func (r *GoalRepository) GetByID(_ context.Context, id int64) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if g := r.find(id); g != nil {
		out := *g
		return &out, nil
	}
	return nil, domain.ErrGoalNotFound
}

// List returns all goals ordered by ID
func (r *GoalRepository) List(_ context.Context) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Goal, 0, len(r.items))
	for _, g := range r.items {
		out := *g
		result = append(result, &out)
	}
	return result, nil
}

// Update applies fn to a copy of the goal under the write lock and stores it if fn succeeds
func (r *GoalRepository) Update(_ context.Context, id int64, fn func(*domain.Goal) error) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.find(id)
	if current == nil {
		return nil, domain.ErrGoalNotFound
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

func (r *GoalRepository) find(id int64) *domain.Goal {
	for _, g := range r.items {
		if g.ID == id {
			return g
		}
	}
	return nil
}
