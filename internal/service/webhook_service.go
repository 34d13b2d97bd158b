package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// WebhookService manages webhook registrations
type WebhookService struct {
	webhookRepo domain.WebhookRepository
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(webhookRepo domain.WebhookRepository) *WebhookService {
	return &WebhookService{webhookRepo: webhookRepo}
}

// RegisterWebhook stores an absolute http(s) URL
func (s *WebhookService) RegisterWebhook(ctx context.Context, rawURL string) (*domain.Webhook, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.ErrInvalidWebhookURL
	}

	webhook, err := s.webhookRepo.Create(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("create webhook: %w", err)
	}
	log.Info().Int64("webhook_id", webhook.ID).Str("url", webhook.URL).Msg("Webhook registered")
	return webhook, nil
}

// GetWebhooks lists registered webhooks
func (s *WebhookService) GetWebhooks(ctx context.Context) ([]*domain.Webhook, error) {
	return s.webhookRepo.List(ctx)
}

// DeleteWebhook removes a webhook
func (s *WebhookService) DeleteWebhook(ctx context.Context, id int64) error {
	if err := s.webhookRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("webhook_id", id).Msg("Webhook deleted")
	return nil
}
