package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationLargeTransaction NotificationType = "transaction.large"
	NotificationBudgetThreshold  NotificationType = "budget.threshold"
	NotificationBudgetExceeded   NotificationType = "budget.exceeded"
	NotificationBalanceNegative  NotificationType = "balance.negative"
	NotificationGoalDueSoon      NotificationType = "goal.due_soon"
	NotificationGoalReached      NotificationType = "goal.reached"
)

// Notification moves one way from unread to read and is never deleted
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"notification_type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) (*Notification, error)
	// List returns notifications newest first
	List(ctx context.Context, unreadOnly bool) ([]*Notification, error)
	// MarkRead sets read=true; marking an already read notification is a no-op
	MarkRead(ctx context.Context, id int64) (*Notification, error)
	CountUnread(ctx context.Context) (int64, error)
}
