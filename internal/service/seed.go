package service

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SeedDemoData loads sample transactions, budgets and goals straight into the
// repositories, skipping alert rules. Transaction dates fall in the current month.
func SeedDemoData(ctx context.Context, transactions domain.TransactionRepository, budgets domain.BudgetRepository, goals domain.GoalRepository, now time.Time) error {
	month := util.MonthStart(now)
	text := func(s string) *string { return &s }
	date := func(t time.Time) *time.Time { return &t }

	demoTransactions := []domain.Transaction{
		{Amount: decimal.RequireFromString("12.50"), Category: "coffee", Type: domain.TransactionTypeExpense, Description: text("Morning latte"), Date: month},
		{Amount: decimal.RequireFromString("45.00"), Category: "groceries", Type: domain.TransactionTypeExpense, Description: text("Weekly shop"), Date: month.AddDate(0, 0, 1)},
		{Amount: decimal.RequireFromString("1200.00"), Category: "rent", Type: domain.TransactionTypeExpense, Description: text("Monthly rent"), Date: month},
	}
	for i := range demoTransactions {
		if _, err := transactions.Create(ctx, &demoTransactions[i]); err != nil {
			return fmt.Errorf("seed transaction: %w", err)
		}
	}

	demoBudgets := []domain.Budget{
		{Name: "Monthly Groceries", Category: "groceries", MonthlyLimit: decimal.NewFromInt(400), AlertThreshold: decimal.RequireFromString("0.9")},
		{Name: "Entertainment Budget", Category: "entertainment", MonthlyLimit: decimal.NewFromInt(50), AlertThreshold: decimal.RequireFromString("0.7")},
		{Name: "Transport Budget", Category: "transport", MonthlyLimit: decimal.NewFromInt(1200), AlertThreshold: decimal.RequireFromString("0.8")},
		{Name: "Rent", Category: "rent", MonthlyLimit: decimal.NewFromInt(1200), AlertThreshold: decimal.NewFromInt(1)},
		{Name: "Utilities", Category: "utilities", MonthlyLimit: decimal.NewFromInt(120), AlertThreshold: decimal.RequireFromString("0.7")},
	}
	for i := range demoBudgets {
		if _, err := budgets.Create(ctx, &demoBudgets[i]); err != nil {
			return fmt.Errorf("seed budget: %w", err)
		}
	}

	demoGoals := []domain.Goal{
		{Name: "Emergency Fund", TargetAmount: decimal.NewFromInt(1000), SavedAmount: decimal.NewFromInt(200), TargetDate: date(util.MonthEnd(now)), Description: text("Emergency fund for unexpected expenses")},
		{Name: "Vacation", TargetAmount: decimal.NewFromInt(1500), SavedAmount: decimal.NewFromInt(300), TargetDate: date(util.MonthEnd(month.AddDate(0, 6, 0))), Description: text("Vacation fund for summer trip")},
		{Name: "New Laptop", TargetAmount: decimal.NewFromInt(2000), SavedAmount: decimal.NewFromInt(500), TargetDate: date(util.MonthEnd(month.AddDate(0, 3, 0))), Description: text("Saving for a new laptop")},
	}
	for i := range demoGoals {
		if _, err := goals.Create(ctx, &demoGoals[i]); err != nil {
			return fmt.Errorf("seed goal: %w", err)
		}
	}

	log.Info().
		Int("transactions", len(demoTransactions)).
		Int("budgets", len(demoBudgets)).
		Int("goals", len(demoGoals)).
		Msg("Seeded demo data")
	return nil
}
