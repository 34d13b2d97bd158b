package domain

import (
	"context"
	"time"
)

// Webhook is an outbound URL that receives alert payloads
type Webhook struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookRepository interface {
	Create(ctx context.Context, url string) (*Webhook, error)
	List(ctx context.Context) ([]*Webhook, error)
	Delete(ctx context.Context, id int64) error
}
