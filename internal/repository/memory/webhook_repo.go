package memory

import (
	"context"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// WebhookRepository implements domain.WebhookRepository in memory
type WebhookRepository struct {
	mu     sync.RWMutex
	items  []*domain.Webhook
	nextID int64
	now    func() time.Time
}

// NewWebhookRepository creates an empty WebhookRepository
func NewWebhookRepository() *WebhookRepository {
	return &WebhookRepository{nextID: 1, now: time.Now}
}

// Create registers a webhook URL
func (r *WebhookRepository) Create(_ context.Context, url string) (*domain.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hook := &domain.Webhook{ID: r.nextID, URL: url, CreatedAt: r.now().UTC()}
	r.nextID++
	r.items = append(r.items, hook)

	out := *hook
	return &out, nil
}

// List returns registered webhooks in registration order
func (r *WebhookRepository) List(_ context.Context) ([]*domain.Webhook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Webhook, 0, len(r.items))
	for _, h := range r.items {
		out := *h
		result = append(result, &out)
	}
	return result, nil
}

// Delete removes a webhook
func (r *WebhookRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.items {
		if h.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrWebhookNotFound
}
