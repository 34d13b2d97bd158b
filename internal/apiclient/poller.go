package apiclient

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval matches the dashboard's notification refresh
const DefaultPollInterval = 10 * time.Second

// NotificationPoller pulls the notification feed on a fixed interval and
// reports unread notifications it has not reported before. There is no
// backoff: a failed poll is an empty poll.
type NotificationPoller struct {
	client   *Client
	interval time.Duration
	onNew    func([]Notification)
	logger   zerolog.Logger

	mu   sync.Mutex
	seen map[int64]struct{}
}

// NewNotificationPoller creates a poller. onNew receives new notifications
// oldest first and is called from the polling goroutine.
func NewNotificationPoller(client *Client, interval time.Duration, onNew func([]Notification)) *NotificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPoller{
		client:   client,
		interval: interval,
		onNew:    onNew,
		logger:   client.logger.With().Str("component", "notification_poller").Logger(),
		seen:     make(map[int64]struct{}),
	}
}

// Run polls immediately and then on every tick until ctx is done
func (p *NotificationPoller) Run(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("Notification poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Notification poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches unread notifications once and returns the ones not seen before
func (p *NotificationPoller) Poll(ctx context.Context) []Notification {
	feed := p.client.ListNotifications(ctx, true)

	p.mu.Lock()
	var fresh []Notification
	// feed is newest first
	for i := len(feed) - 1; i >= 0; i-- {
		n := feed[i]
		if n.Read {
			continue
		}
		if _, ok := p.seen[n.ID]; ok {
			continue
		}
		p.seen[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}
	p.mu.Unlock()

	if len(fresh) > 0 {
		p.logger.Debug().Int("count", len(fresh)).Msg("New notifications")
		if p.onNew != nil {
			p.onNew(fresh)
		}
	}
	return fresh
}
