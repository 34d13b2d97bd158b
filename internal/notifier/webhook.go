package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// WebhookSink POSTs alerts as JSON to every registered webhook
type WebhookSink struct {
	webhookRepo domain.WebhookRepository
	client      *http.Client
}

// NewWebhookSink creates a WebhookSink. A nil client uses http.DefaultClient.
func NewWebhookSink(webhookRepo domain.WebhookRepository, client *http.Client) *WebhookSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSink{webhookRepo: webhookRepo, client: client}
}

// Name implements Sink
func (s *WebhookSink) Name() string { return "webhook" }

// Send implements Sink. Every webhook is attempted; failures are joined.
func (s *WebhookSink) Send(ctx context.Context, alerts []*domain.Notification) error {
	hooks, err := s.webhookRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list webhooks: %w", err)
	}
	if len(hooks) == 0 {
		return nil
	}

	body, err := encode(alerts)
	if err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}

	var errs []error
	for _, hook := range hooks {
		if err := s.post(ctx, hook.URL, body); err != nil {
			errs = append(errs, fmt.Errorf("webhook %d: %w", hook.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *WebhookSink) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
