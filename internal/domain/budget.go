package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Budget errors
var (
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrInvalidMonthlyLimit   = errors.New("monthly limit must be greater than 0 with at most 2 decimal places")
	ErrInvalidAlertThreshold = errors.New("alert threshold must be in (0, 1] with at most 4 decimal places")
)

// Budget is a monthly spending cap for a category. Spending figures are never
// stored on the entity; see BudgetStatus.
type Budget struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	MonthlyLimit   decimal.Decimal `json:"monthly_limit"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Validate checks the stored fields of a budget
func (b *Budget) Validate() error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	category := strings.TrimSpace(b.Category)
	if category == "" {
		return ErrCategoryRequired
	}
	if len(category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if !b.MonthlyLimit.IsPositive() || !validMoney(b.MonthlyLimit) {
		return ErrInvalidMonthlyLimit
	}
	if !b.AlertThreshold.IsPositive() || b.AlertThreshold.GreaterThan(decimal.NewFromInt(1)) ||
		!fitsScale(b.AlertThreshold, ThresholdScale) {
		return ErrInvalidAlertThreshold
	}
	return nil
}

// BudgetStatus is a budget evaluated against the current month's spending
type BudgetStatus struct {
	Budget
	SpentThisMonth       decimal.Decimal `json:"spent_this_month"`
	BudgetUsedPercentage decimal.Decimal `json:"budget_used_percentage"`
	RemainingBudget      decimal.Decimal `json:"remaining_budget"`
	IsOverThreshold      bool            `json:"is_over_threshold"`
	IsExceeded           bool            `json:"is_exceeded"`
}

// EvaluateBudget derives the status of b given the amount spent this month.
// The used percentage is a fraction and is not capped at 1.
func EvaluateBudget(b *Budget, spent decimal.Decimal) *BudgetStatus {
	used := decimal.Zero
	if b.MonthlyLimit.IsPositive() {
		used = spent.Div(b.MonthlyLimit)
	}
	return &BudgetStatus{
		Budget:               *b,
		SpentThisMonth:       spent,
		BudgetUsedPercentage: used,
		RemainingBudget:      b.MonthlyLimit.Sub(spent),
		IsOverThreshold:      used.GreaterThanOrEqual(b.AlertThreshold),
		IsExceeded:           spent.GreaterThanOrEqual(b.MonthlyLimit),
	}
}

type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) (*Budget, error)
	GetByID(ctx context.Context, id int64) (*Budget, error)
	List(ctx context.Context) ([]*Budget, error)
	// FindByCategory returns the first budget (lowest id) for the category, or ErrBudgetNotFound
	FindByCategory(ctx context.Context, category string) (*Budget, error)
	// Update applies fn to the current budget atomically and persists the result
	Update(ctx context.Context, id int64, fn func(*Budget) error) (*Budget, error)
}
