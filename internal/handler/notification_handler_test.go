package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/budgetassist/budget-assist-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationHandler(t *testing.T, titles ...string) (*NotificationHandler, *testutil.MockWebhookRepository) {
	t.Helper()
	notificationService := service.NewNotificationService(testutil.NewMockNotificationRepository())
	for _, title := range titles {
		_, err := notificationService.Notify(context.Background(), domain.NotificationLargeTransaction, title, "message")
		require.NoError(t, err)
	}
	webhookRepo := testutil.NewMockWebhookRepository()
	return NewNotificationHandler(notificationService, service.NewWebhookService(webhookRepo)), webhookRepo
}

func TestGetNotifications_NewestFirst(t *testing.T) {
	handler, _ := newNotificationHandler(t, "first", "second", "third")

	c, rec := newContext(http.MethodGet, "/api/v1/notifications", "")
	require.NoError(t, handler.GetNotifications(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[[]NotificationResponse](t, rec)
	require.Len(t, resp, 3)
	assert.Equal(t, "third", resp[0].Title)
	assert.Equal(t, "first", resp[2].Title)
	assert.Equal(t, "transaction.large", resp[0].NotificationType)
	assert.False(t, resp[0].Read)
}

func TestMarkRead_Idempotent(t *testing.T) {
	handler, _ := newNotificationHandler(t, "only")

	for i := 0; i < 2; i++ {
		c, rec := newContext(http.MethodPost, "/api/v1/notifications/1/read", "")
		require.NoError(t, handler.MarkRead(withID(c, "1")))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decode[NotificationResponse](t, rec)
		assert.True(t, resp.Read)
	}

	c, rec := newContext(http.MethodGet, "/api/v1/notifications/unread-count", "")
	require.NoError(t, handler.GetUnreadCount(c))
	assert.JSONEq(t, `{"count": 0}`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/api/v1/notifications?unread=true", "")
	require.NoError(t, handler.GetNotifications(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMarkRead_NotFound(t *testing.T) {
	handler, _ := newNotificationHandler(t)

	c, rec := newContext(http.MethodPost, "/api/v1/notifications/99/read", "")
	require.NoError(t, handler.MarkRead(withID(c, "99")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNotifications_InvalidUnreadFlag(t *testing.T) {
	handler, _ := newNotificationHandler(t)

	c, rec := newContext(http.MethodGet, "/api/v1/notifications?unread=maybe", "")
	require.NoError(t, handler.GetNotifications(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhooks_Lifecycle(t *testing.T) {
	handler, _ := newNotificationHandler(t)

	c, rec := newContext(http.MethodPost, "/api/v1/notifications/webhooks", `{"url": "https://hooks.example.com/alerts"}`)
	require.NoError(t, handler.RegisterWebhook(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[WebhookResponse](t, rec)
	assert.Equal(t, "https://hooks.example.com/alerts", created.URL)

	c, rec = newContext(http.MethodGet, "/api/v1/notifications/webhooks", "")
	require.NoError(t, handler.GetWebhooks(c))
	assert.Len(t, decode[[]WebhookResponse](t, rec), 1)

	c, rec = newContext(http.MethodDelete, "/api/v1/notifications/webhooks/1", "")
	require.NoError(t, handler.DeleteWebhook(withID(c, "1")))
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())

	c, rec = newContext(http.MethodDelete, "/api/v1/notifications/webhooks/1", "")
	require.NoError(t, handler.DeleteWebhook(withID(c, "1")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterWebhook_InvalidURL(t *testing.T) {
	handler, repo := newNotificationHandler(t)

	c, rec := newContext(http.MethodPost, "/api/v1/notifications/webhooks", `{"url": "ftp://example.com"}`)
	require.NoError(t, handler.RegisterWebhook(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"url"}, fieldNames(decode[ProblemDetails](t, rec)))
	assert.Empty(t, repo.Webhooks)
}
