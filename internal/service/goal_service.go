package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goals
type GoalService struct {
	goalRepo       domain.GoalRepository
	notifications  *NotificationService
	eventPublisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// SetNotificationService enables goal.reached notifications
func (s *GoalService) SetNotificationService(notifications *NotificationService) {
	s.notifications = notifications
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *GoalService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	TargetDate   *time.Time
	Description  *string
}

// CreateGoal validates and stores a goal
func (s *GoalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal := &domain.Goal{
		Name:         strings.TrimSpace(input.Name),
		TargetAmount: input.TargetAmount,
		SavedAmount:  input.SavedAmount,
		TargetDate:   input.TargetDate,
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			goal.Description = &trimmed
		}
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create goal")
		return nil, fmt.Errorf("create goal: %w", err)
	}

	log.Info().Int64("goal_id", created.ID).Str("name", created.Name).Msg("Goal created")
	s.publishEvent(websocket.GoalCreated(created))
	return created, nil
}

// UpdateGoal applies the non-nil fields atomically. Concurrent updates
// are serialized by the repository; the last write wins per field.
func (s *GoalService) UpdateGoal(ctx context.Context, id int64, update domain.GoalUpdate) (*domain.Goal, error) {
	var wasCompleted bool
	updated, err := s.goalRepo.Update(ctx, id, func(g *domain.Goal) error {
		wasCompleted = g.IsCompleted()
		update.Apply(g)
		return g.Validate()
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("goal_id", updated.ID).
		Str("saved_amount", updated.SavedAmount.String()).
		Msg("Goal updated")

	s.publishEvent(websocket.GoalUpdated(updated))

	if !wasCompleted && updated.IsCompleted() && s.notifications != nil {
		_, err := s.notifications.Notify(ctx, domain.NotificationGoalReached,
			fmt.Sprintf("Goal Reached: %s", updated.Name),
			fmt.Sprintf("You have saved %s of %s for '%s'", updated.SavedAmount.StringFixed(2), updated.TargetAmount.StringFixed(2), updated.Name))
		if err != nil {
			log.Warn().Err(err).Int64("goal_id", updated.ID).Msg("Failed to record goal reached notification")
		}
	}
	return updated, nil
}

// GetGoalByID retrieves a goal
func (s *GoalService) GetGoalByID(ctx context.Context, id int64) (*domain.Goal, error) {
	return s.goalRepo.GetByID(ctx, id)
}

// GetGoals lists all goals
func (s *GoalService) GetGoals(ctx context.Context) ([]*domain.Goal, error) {
	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}
