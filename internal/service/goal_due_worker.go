package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/rs/zerolog"
)

// overdueLookbackDays bounds how long after its target date a goal keeps being reminded
const overdueLookbackDays = 30

// GoalDueWorker is a background worker that periodically reminds about goals nearing their target date
type GoalDueWorker struct {
	goalRepo      domain.GoalRepository
	notifications *NotificationService
	logger        zerolog.Logger
	interval      time.Duration
	windowDays    int
	now           func() time.Time
	// lastNotified maps goal id to the calendar day it was last reminded about
	lastNotified map[int64]string
	stopCh       chan struct{}
	doneCh       chan struct{}
	mu           sync.Mutex
	running      bool
}

// GoalDueWorkerConfig holds configuration for the goal due worker
type GoalDueWorkerConfig struct {
	Interval   time.Duration // How often to check goals
	WindowDays int           // How many days ahead a goal counts as due soon
}

// DefaultGoalDueWorkerConfig returns sensible defaults
func DefaultGoalDueWorkerConfig() GoalDueWorkerConfig {
	return GoalDueWorkerConfig{
		Interval:   1 * time.Hour,
		WindowDays: 5,
	}
}

// NewGoalDueWorker creates a new goal due worker
func NewGoalDueWorker(
	goalRepo domain.GoalRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
	config GoalDueWorkerConfig,
) *GoalDueWorker {
	defaults := DefaultGoalDueWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.WindowDays <= 0 {
		config.WindowDays = defaults.WindowDays
	}

	return &GoalDueWorker{
		goalRepo:      goalRepo,
		notifications: notifications,
		logger:        logger.With().Str("component", "goal_due_worker").Logger(),
		interval:      config.Interval,
		windowDays:    config.WindowDays,
		now:           time.Now,
		lastNotified:  make(map[int64]string),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins the background goal check
func (w *GoalDueWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Int("window_days", w.windowDays).
		Msg("Starting goal due worker")

	go w.run(ctx)
}

// Stop gracefully stops the worker
func (w *GoalDueWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping goal due worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Goal due worker stopped")
}

func (w *GoalDueWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Run immediately on startup
	w.CheckGoals(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.setStopped()
			return
		case <-w.stopCh:
			w.setStopped()
			return
		case <-ticker.C:
			w.CheckGoals(ctx)
		}
	}
}

func (w *GoalDueWorker) setStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// CheckGoals notifies about incomplete goals due between 30 days ago and the window ahead.
// It returns the number of notifications created.
func (w *GoalDueWorker) CheckGoals(ctx context.Context) int {
	goals, err := w.goalRepo.List(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to list goals for due check")
		return 0
	}

	now := w.now()
	today := util.StartOfDay(now).Format("2006-01-02")
	sent := 0

	for _, goal := range goals {
		if ctx.Err() != nil {
			return sent
		}
		if goal.TargetDate == nil || goal.IsCompleted() {
			continue
		}

		days := util.DaysUntil(now, *goal.TargetDate)
		if days > w.windowDays || days < -overdueLookbackDays {
			continue
		}

		w.mu.Lock()
		already := w.lastNotified[goal.ID] == today
		w.mu.Unlock()
		if already {
			continue
		}

		_, err := w.notifications.Notify(ctx, domain.NotificationGoalDueSoon,
			fmt.Sprintf("Goal Due Soon: %s", goal.Name),
			GoalDueMessage(goal.Name, *goal.TargetDate, days))
		if err != nil {
			w.logger.Error().Err(err).Int64("goal_id", goal.ID).Msg("Failed to record goal due notification")
			continue
		}

		w.mu.Lock()
		w.lastNotified[goal.ID] = today
		w.mu.Unlock()
		sent++
	}

	if sent > 0 {
		w.logger.Info().Int("notified", sent).Msg("Completed goal due check")
	}
	return sent
}

// IsRunning returns whether the worker is currently running
func (w *GoalDueWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// GoalDueMessage describes how far a goal's target date is from today
func GoalDueMessage(name string, due time.Time, days int) string {
	formatted := due.Format("02 Jan")
	switch {
	case days == 0:
		return fmt.Sprintf("Goal '%s' is due today (%s)", name, formatted)
	case days == 1:
		return fmt.Sprintf("Goal '%s' is due tomorrow (%s)", name, formatted)
	case days > 1:
		return fmt.Sprintf("Goal '%s' is due in %d days (%s)", name, days, formatted)
	case days == -1:
		return fmt.Sprintf("Goal '%s' was due yesterday (%s)", name, formatted)
	default:
		return fmt.Sprintf("Goal '%s' was due %d days ago (%s)", name, -days, formatted)
	}
}
