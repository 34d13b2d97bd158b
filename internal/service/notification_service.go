package service

import (
	"context"
	"fmt"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// AlertDispatcher forwards newly created notifications to external sinks
type AlertDispatcher interface {
	Dispatch(notification *domain.Notification)
}

// NotificationService handles the notification feed
type NotificationService struct {
	notificationRepo domain.NotificationRepository
	dispatcher       AlertDispatcher
	eventPublisher   websocket.EventPublisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo domain.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// SetDispatcher sets the sink fan-out used for new notifications
func (s *NotificationService) SetDispatcher(dispatcher AlertDispatcher) {
	s.dispatcher = dispatcher
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *NotificationService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *NotificationService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Notify creates an unread notification and fans it out
func (s *NotificationService) Notify(ctx context.Context, notificationType domain.NotificationType, title, message string) (*domain.Notification, error) {
	created, err := s.notificationRepo.Create(ctx, &domain.Notification{
		Type:    notificationType,
		Title:   title,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	log.Info().
		Int64("notification_id", created.ID).
		Str("notification_type", string(created.Type)).
		Msg("Notification created")

	s.publishEvent(websocket.NotificationCreated(created))
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(created)
	}
	return created, nil
}

// List returns notifications newest first
func (s *NotificationService) List(ctx context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notificationRepo.List(ctx, unreadOnly)
}

// MarkRead marks a notification as read. Marking twice is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.NotificationRead(notification))
	return notification, nil
}

// UnreadCount returns how many notifications are still unread
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.notificationRepo.CountUnread(ctx)
}
