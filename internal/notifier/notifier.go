// Package notifier fans new notifications out to external alert sinks.
package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single sink delivery
const DefaultTimeout = 5 * time.Second

// Sink delivers alerts somewhere outside the service
type Sink interface {
	Name() string
	Send(ctx context.Context, alerts []*domain.Notification) error
}

// Payload is the body every sink sends
type Payload struct {
	Alerts []*domain.Notification `json:"alerts"`
}

func encode(alerts []*domain.Notification) ([]byte, error) {
	return json.Marshal(Payload{Alerts: alerts})
}

// Dispatcher delivers each notification to every sink in the background.
// Delivery errors are logged and never reach the caller.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over sinks
func NewDispatcher(logger zerolog.Logger, timeout time.Duration, sinks ...Sink) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  logger.With().Str("component", "notifier").Logger(),
	}
}

// Dispatch sends notification to all sinks asynchronously
func (d *Dispatcher) Dispatch(notification *domain.Notification) {
	alerts := []*domain.Notification{notification}
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go func(s Sink) {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			if err := s.Send(ctx, alerts); err != nil {
				d.logger.Warn().
					Err(err).
					Str("sink", s.Name()).
					Int64("notification_id", notification.ID).
					Msg("Alert delivery failed")
				return
			}
			d.logger.Debug().
				Str("sink", s.Name()).
				Int64("notification_id", notification.ID).
				Msg("Alert delivered")
		}(sink)
	}
}

// Wait blocks until in-flight deliveries finish
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
