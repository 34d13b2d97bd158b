package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetService handles budgets and evaluates them against this month's spending
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BudgetService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	Name           string
	Category       string
	MonthlyLimit   decimal.Decimal
	AlertThreshold decimal.Decimal
}

// UpdateBudgetInput holds a partial budget update
type UpdateBudgetInput struct {
	Name           *string
	Category       *string
	MonthlyLimit   *decimal.Decimal
	AlertThreshold *decimal.Decimal
}

// CreateBudget validates and stores a budget
func (s *BudgetService) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.BudgetStatus, error) {
	budget := &domain.Budget{
		Name:           strings.TrimSpace(input.Name),
		Category:       strings.TrimSpace(input.Category),
		MonthlyLimit:   input.MonthlyLimit,
		AlertThreshold: input.AlertThreshold,
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(ctx, budget)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create budget")
		return nil, fmt.Errorf("create budget: %w", err)
	}

	log.Info().
		Int64("budget_id", created.ID).
		Str("category", created.Category).
		Msg("Budget created")

	status, err := s.evaluate(ctx, created, s.now())
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.BudgetCreated(status))
	return status, nil
}

// UpdateBudget applies a partial update and returns the re-evaluated budget
func (s *BudgetService) UpdateBudget(ctx context.Context, id int64, input UpdateBudgetInput) (*domain.BudgetStatus, error) {
	updated, err := s.budgetRepo.Update(ctx, id, func(b *domain.Budget) error {
		if input.Name != nil {
			b.Name = strings.TrimSpace(*input.Name)
		}
		if input.Category != nil {
			b.Category = strings.TrimSpace(*input.Category)
		}
		if input.MonthlyLimit != nil {
			b.MonthlyLimit = *input.MonthlyLimit
		}
		if input.AlertThreshold != nil {
			b.AlertThreshold = *input.AlertThreshold
		}
		return b.Validate()
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("budget_id", updated.ID).Msg("Budget updated")

	status, err := s.evaluate(ctx, updated, s.now())
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.BudgetUpdated(status))
	return status, nil
}

// GetBudgetByID returns one budget with derived fields
func (s *BudgetService) GetBudgetByID(ctx context.Context, id int64) (*domain.BudgetStatus, error) {
	budget, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, budget, s.now())
}

// GetBudgets returns every budget evaluated for the current calendar month
func (s *BudgetService) GetBudgets(ctx context.Context) ([]*domain.BudgetStatus, error) {
	budgets, err := s.budgetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	now := s.now()
	statuses := make([]*domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status, err := s.evaluate(ctx, b, now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// evaluate sums EXPENSE transactions in the budget's category for the month containing now
func (s *BudgetService) evaluate(ctx context.Context, budget *domain.Budget, now time.Time) (*domain.BudgetStatus, error) {
	spent, err := s.transactionRepo.SumExpensesByCategory(ctx, budget.Category, util.MonthStart(now), util.MonthEnd(now))
	if err != nil {
		return nil, fmt.Errorf("sum spending for budget %d: %w", budget.ID, err)
	}
	return domain.EvaluateBudget(budget, spent), nil
}
