package postgres

import (
	"context"
	"fmt"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WebhookRepository implements domain.WebhookRepository using PostgreSQL
type WebhookRepository struct {
	pool *pgxpool.Pool
}

// NewWebhookRepository creates a new WebhookRepository
func NewWebhookRepository(pool *pgxpool.Pool) *WebhookRepository {
	return &WebhookRepository{pool: pool}
}

// Create registers a webhook URL
func (r *WebhookRepository) Create(ctx context.Context, url string) (*domain.Webhook, error) {
	hook, err := scanWebhook(r.pool.QueryRow(ctx,
		`INSERT INTO webhooks (url) VALUES ($1) RETURNING id, url, created_at`, url))
	if err != nil {
		return nil, fmt.Errorf("insert webhook: %w", err)
	}
	return hook, nil
}

// List retrieves registered webhooks
func (r *WebhookRepository) List(ctx context.Context) ([]*domain.Webhook, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, url, created_at FROM webhooks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query webhooks: %w", err)
	}
	return collect(rows, scanWebhook)
}

// Delete removes a webhook
func (r *WebhookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWebhookNotFound
	}
	return nil
}

func scanWebhook(row pgx.Row) (*domain.Webhook, error) {
	var h domain.Webhook
	if err := row.Scan(&h.ID, &h.URL, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
