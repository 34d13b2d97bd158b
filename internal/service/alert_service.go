package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultLargeTransactionThreshold is the amount above which a transaction is flagged
var DefaultLargeTransactionThreshold = decimal.NewFromInt(500)

// AlertService evaluates notification rules after a transaction is stored.
// Rules fire only when a condition is crossed by the new transaction.
type AlertService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	notifications   *NotificationService
	largeThreshold  decimal.Decimal
	logger          zerolog.Logger
	now             func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(
	transactionRepo domain.TransactionRepository,
	budgetRepo domain.BudgetRepository,
	notifications *NotificationService,
	largeThreshold decimal.Decimal,
	logger zerolog.Logger,
) *AlertService {
	if !largeThreshold.IsPositive() {
		largeThreshold = DefaultLargeTransactionThreshold
	}
	return &AlertService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		notifications:   notifications,
		largeThreshold:  largeThreshold,
		logger:          logger.With().Str("component", "alert_rules").Logger(),
		now:             time.Now,
	}
}

// EvaluateTransaction runs every rule for a transaction that has already been stored.
// Failures are logged and never propagated to the caller.
func (s *AlertService) EvaluateTransaction(ctx context.Context, tx *domain.Transaction) {
	if tx.Amount.GreaterThan(s.largeThreshold) {
		s.notify(ctx, domain.NotificationLargeTransaction,
			"Large Transaction",
			fmt.Sprintf("A transaction of %s was added in %s", tx.Amount.StringFixed(2), tx.Category))
	}

	if tx.Type == domain.TransactionTypeExpense {
		if err := s.checkBudget(ctx, tx); err != nil {
			s.logger.Error().Err(err).Int64("transaction_id", tx.ID).Msg("Budget rule failed")
		}
	}

	if err := s.checkBalance(ctx, tx); err != nil {
		s.logger.Error().Err(err).Int64("transaction_id", tx.ID).Msg("Balance rule failed")
	}
}

func (s *AlertService) checkBudget(ctx context.Context, tx *domain.Transaction) error {
	now := s.now()
	start, end := util.MonthStart(now), util.MonthEnd(now)
	if !tx.InRange(start, end) {
		return nil
	}

	budget, err := s.budgetRepo.FindByCategory(ctx, tx.Category)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return nil
		}
		return fmt.Errorf("find budget: %w", err)
	}

	spentAfter, err := s.transactionRepo.SumExpensesByCategory(ctx, budget.Category, start, end)
	if err != nil {
		return fmt.Errorf("sum spending: %w", err)
	}
	before := domain.EvaluateBudget(budget, spentAfter.Sub(tx.Amount))
	after := domain.EvaluateBudget(budget, spentAfter)

	if !before.IsOverThreshold && after.IsOverThreshold {
		pct := after.BudgetUsedPercentage.Mul(decimal.NewFromInt(100)).Round(0)
		s.notify(ctx, domain.NotificationBudgetThreshold,
			fmt.Sprintf("%s Budget Alert", budget.Category),
			fmt.Sprintf("Your spending has reached %s/%s (%s%%)",
				after.SpentThisMonth.StringFixed(2), budget.MonthlyLimit.StringFixed(2), pct.String()))
	}
	if !before.IsExceeded && after.IsExceeded {
		s.notify(ctx, domain.NotificationBudgetExceeded,
			fmt.Sprintf("%s Budget Exceeded", budget.Category),
			fmt.Sprintf("You have exceeded your budget of %s for %s!", budget.MonthlyLimit.StringFixed(2), budget.Category))
	}
	return nil
}

func (s *AlertService) checkBalance(ctx context.Context, tx *domain.Transaction) error {
	all, err := s.transactionRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	balance := decimal.Zero
	for _, t := range all {
		balance = balance.Add(t.SignedAmount())
	}
	previous := balance.Sub(tx.SignedAmount())

	if !previous.IsNegative() && balance.IsNegative() {
		s.notify(ctx, domain.NotificationBalanceNegative,
			"Negative Balance",
			fmt.Sprintf("Your total balance is negative: %s", balance.StringFixed(2)))
	}
	return nil
}

func (s *AlertService) notify(ctx context.Context, notificationType domain.NotificationType, title, message string) {
	if _, err := s.notifications.Notify(ctx, notificationType, title, message); err != nil {
		s.logger.Error().
			Err(err).
			Str("notification_type", string(notificationType)).
			Msg("Failed to record notification")
	}
}
