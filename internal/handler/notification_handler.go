package handler

import (
	"net/http"
	"strconv"

	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the notification feed and webhook registry
type NotificationHandler struct {
	notificationService *service.NotificationService
	webhookService      *service.WebhookService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *service.NotificationService, webhookService *service.WebhookService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		webhookService:      webhookService,
	}
}

// RegisterWebhookRequest represents the register webhook request body
type RegisterWebhookRequest struct {
	URL string `json:"url"`
}

// GetNotifications handles GET /api/v1/notifications, newest first.
// ?unread=true restricts the list to unread notifications.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	unreadOnly := false
	if v := c.QueryParam("unread"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "unread", Message: "Must be true or false"},
			})
		}
		unreadOnly = parsed
	}

	notifications, err := h.notificationService.List(c.Request().Context(), unreadOnly)
	if err != nil {
		return handleServiceError(c, err, "get notifications")
	}
	return c.JSON(http.StatusOK, toNotificationResponses(notifications))
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid notification ID", nil)
	}

	notification, err := h.notificationService.MarkRead(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "mark notification as read")
	}
	return c.JSON(http.StatusOK, toNotificationResponse(notification))
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "count unread notifications")
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// RegisterWebhook handles POST /api/v1/notifications/webhooks
func (h *NotificationHandler) RegisterWebhook(c echo.Context) error {
	var req RegisterWebhookRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	webhook, err := h.webhookService.RegisterWebhook(c.Request().Context(), req.URL)
	if err != nil {
		return handleServiceError(c, err, "register webhook")
	}
	return c.JSON(http.StatusCreated, toWebhookResponse(webhook))
}

// GetWebhooks handles GET /api/v1/notifications/webhooks
func (h *NotificationHandler) GetWebhooks(c echo.Context) error {
	webhooks, err := h.webhookService.GetWebhooks(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "get webhooks")
	}

	resp := make([]WebhookResponse, len(webhooks))
	for i, w := range webhooks {
		resp[i] = toWebhookResponse(w)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteWebhook handles DELETE /api/v1/notifications/webhooks/:id
func (h *NotificationHandler) DeleteWebhook(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid webhook ID", nil)
	}

	if err := h.webhookService.DeleteWebhook(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "delete webhook")
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
