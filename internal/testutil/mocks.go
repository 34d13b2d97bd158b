package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions []*domain.Transaction
	nextID       int64
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	ListFn       func(filters *domain.TransactionFilters) ([]*domain.Transaction, error)
	SumFn        func(category string, start, end time.Time) (decimal.Decimal, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{nextID: 1}
}

// AddTransaction adds a transaction to the mock without assigning defaults
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if transaction.ID == 0 {
		transaction.ID = m.nextID
	}
	if transaction.ID >= m.nextID {
		m.nextID = transaction.ID + 1
	}
	m.Transactions = append(m.Transactions, transaction)
}

// Create stores a transaction
func (m *MockTransactionRepository) Create(_ context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *transaction
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	m.nextID++
	m.Transactions = append(m.Transactions, &stored)
	out := stored
	return &out, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Transactions {
		if t.ID == id {
			out := *t
			return &out, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// List returns matching transactions in insertion order
func (m *MockTransactionRepository) List(_ context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(filters)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Transaction, 0, len(m.Transactions))
	for _, t := range m.Transactions {
		if filters.Matches(t) {
			out := *t
			result = append(result, &out)
		}
	}
	return result, nil
}

// SumExpensesByCategory sums EXPENSE amounts in category within [start, end]
func (m *MockTransactionRepository) SumExpensesByCategory(_ context.Context, category string, start, end time.Time) (decimal.Decimal, error) {
	if m.SumFn != nil {
		return m.SumFn(category, start, end)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, t := range m.Transactions {
		if t.Type == domain.TransactionTypeExpense && domain.SameCategory(t.Category, category) && t.InRange(start, end) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	mu       sync.Mutex
	Budgets  map[int64]*domain.Budget
	nextID   int64
	CreateFn func(budget *domain.Budget) (*domain.Budget, error)
	ListFn   func() ([]*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int64]*domain.Budget),
		nextID:  1,
	}
}

// AddBudget adds a budget to the mock
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if budget.ID == 0 {
		budget.ID = m.nextID
	}
	if budget.ID >= m.nextID {
		m.nextID = budget.ID + 1
	}
	m.Budgets[budget.ID] = budget
}

// Create stores a budget
func (m *MockBudgetRepository) Create(_ context.Context, budget *domain.Budget) (*domain.Budget, error) {
	if m.CreateFn != nil {
		return m.CreateFn(budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *budget
	stored.ID = m.nextID
	m.nextID++
	m.Budgets[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(_ context.Context, id int64) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.Budgets[id]; ok {
		out := *b
		return &out, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// List returns budgets ordered by ID
func (m *MockBudgetRepository) List(_ context.Context) ([]*domain.Budget, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Budget, 0, len(m.Budgets))
	for id := int64(1); id < m.nextID; id++ {
		if b, ok := m.Budgets[id]; ok {
			out := *b
			result = append(result, &out)
		}
	}
	return result, nil
}

// FindByCategory returns the lowest-ID budget for category
func (m *MockBudgetRepository) FindByCategory(_ context.Context, category string) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := int64(1); id < m.nextID; id++ {
		if b, ok := m.Budgets[id]; ok && domain.SameCategory(b.Category, category) {
			out := *b
			return &out, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// Update applies fn to a copy and stores it if fn succeeds
func (m *MockBudgetRepository) Update(_ context.Context, id int64, fn func(*domain.Budget) error) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	updated := *b
	if err := fn(&updated); err != nil {
		return nil, err
	}
	m.Budgets[id] = &updated
	out := updated
	return &out, nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	mu       sync.Mutex
	Goals    map[int64]*domain.Goal
	nextID   int64
	ListFn   func() ([]*domain.Goal, error)
	UpdateFn func(id int64, fn func(*domain.Goal) error) (*domain.Goal, error)
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		Goals:  make(map[int64]*domain.Goal),
		nextID: 1,
	}
}

// AddGoal adds a goal to the mock
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if goal.ID == 0 {
		goal.ID = m.nextID
	}
	if goal.ID >= m.nextID {
		m.nextID = goal.ID + 1
	}
	m.Goals[goal.ID] = goal
}

// Create stores a goal
func (m *MockGoalRepository) Create(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *goal
	stored.ID = m.nextID
	m.nextID++
	m.Goals[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByID retrieves a goal by ID
func (m *MockGoalRepository) GetByID(_ context.Context, id int64) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.Goals[id]; ok {
		out := *g
		return &out, nil
	}
	return nil, domain.ErrGoalNotFound
}

// List returns goals ordered by ID
func (m *MockGoalRepository) List(_ context.Context) ([]*domain.Goal, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Goal, 0, len(m.Goals))
	for id := int64(1); id < m.nextID; id++ {
		if g, ok := m.Goals[id]; ok {
			out := *g
			result = append(result, &out)
		}
	}
	return result, nil
}

// Update applies fn to a copy and stores it if fn succeeds
func (m *MockGoalRepository) Update(_ context.Context, id int64, fn func(*domain.Goal) error) (*domain.Goal, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.Goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	updated := *g
	if err := fn(&updated); err != nil {
		return nil, err
	}
	m.Goals[id] = &updated
	out := updated
	return &out, nil
}

// MockNotificationRepository is a mock implementation of domain.NotificationRepository
type MockNotificationRepository struct {
	mu            sync.Mutex
	Notifications []*domain.Notification // oldest first
	nextID        int64
	CreateFn      func(notification *domain.Notification) (*domain.Notification, error)
}

// NewMockNotificationRepository creates a new MockNotificationRepository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{nextID: 1}
}

// Create stores an unread notification
func (m *MockNotificationRepository) Create(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if m.CreateFn != nil {
		return m.CreateFn(notification)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *notification
	stored.ID = m.nextID
	stored.Read = false
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.nextID++
	m.Notifications = append(m.Notifications, &stored)
	out := stored
	return &out, nil
}

// List returns notifications newest first
func (m *MockNotificationRepository) List(_ context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Notification, 0, len(m.Notifications))
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		n := m.Notifications[i]
		if unreadOnly && n.Read {
			continue
		}
		out := *n
		result = append(result, &out)
	}
	return result, nil
}

// MarkRead marks a notification read
func (m *MockNotificationRepository) MarkRead(_ context.Context, id int64) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Notifications {
		if n.ID == id {
			n.Read = true
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

// CountUnread counts unread notifications
func (m *MockNotificationRepository) CountUnread(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.Notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// ByType returns stored notifications of the given type, oldest first
func (m *MockNotificationRepository) ByType(t domain.NotificationType) []*domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Notification
	for _, n := range m.Notifications {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}

// MockWebhookRepository is a mock implementation of domain.WebhookRepository
type MockWebhookRepository struct {
	mu       sync.Mutex
	Webhooks []*domain.Webhook
	nextID   int64
	ListFn   func() ([]*domain.Webhook, error)
}

// NewMockWebhookRepository creates a new MockWebhookRepository
func NewMockWebhookRepository() *MockWebhookRepository {
	return &MockWebhookRepository{nextID: 1}
}

// Create registers a webhook
func (m *MockWebhookRepository) Create(_ context.Context, url string) (*domain.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := &domain.Webhook{ID: m.nextID, URL: url, CreatedAt: time.Now().UTC()}
	m.nextID++
	m.Webhooks = append(m.Webhooks, w)
	out := *w
	return &out, nil
}

// List returns registered webhooks
func (m *MockWebhookRepository) List(_ context.Context) ([]*domain.Webhook, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Webhook, 0, len(m.Webhooks))
	for _, w := range m.Webhooks {
		out := *w
		result = append(result, &out)
	}
	return result, nil
}

// Delete removes a webhook
func (m *MockWebhookRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.Webhooks {
		if w.ID == id {
			m.Webhooks = append(m.Webhooks[:i], m.Webhooks[i+1:]...)
			return nil
		}
	}
	return domain.ErrWebhookNotFound
}

// MockEventPublisher records published websocket events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// MockDispatcher records notifications handed to external sinks
type MockDispatcher struct {
	mu         sync.Mutex
	Dispatched []*domain.Notification
}

// Dispatch records the notification
func (m *MockDispatcher) Dispatch(notification *domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dispatched = append(m.Dispatched, notification)
}

// Count returns how many notifications were dispatched
func (m *MockDispatcher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Dispatched)
}
