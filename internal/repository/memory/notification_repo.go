package memory

import (
	"context"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// NotificationRepository implements domain.NotificationRepository in memory
type NotificationRepository struct {
	mu     sync.RWMutex
	items  []*domain.Notification // oldest first
	nextID int64
	now    func() time.Time
}

// NewNotificationRepository creates an empty NotificationRepository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{nextID: 1, now: time.Now}
}

// Create stores a new unread notification
func (r *NotificationRepository) Create(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *notification
	stored.ID = r.nextID
	stored.Read = false
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	r.nextID++
	r.items = append(r.items, &stored)

	out := stored
	return &out, nil
}

// List returns notifications newest first
func (r *NotificationRepository) List(_ context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Notification, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if unreadOnly && n.Read {
			continue
		}
		out := *n
		result = append(result, &out)
	}
	return result, nil
}

// MarkRead flags a notification as read. Already read notifications are returned unchanged.
func (r *NotificationRepository) MarkRead(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.items {
		if n.ID == id {
			n.Read = true
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

// CountUnread returns the number of unread notifications
func (r *NotificationRepository) CountUnread(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
