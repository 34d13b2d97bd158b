package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SummaryService builds the dashboard summary and chart series
type SummaryService struct {
	transactionRepo domain.TransactionRepository
	budgetService   *BudgetService
	goalRepo        domain.GoalRepository
	now             func() time.Time
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository, budgetService *BudgetService, goalRepo domain.GoalRepository) *SummaryService {
	return &SummaryService{
		transactionRepo: transactionRepo,
		budgetService:   budgetService,
		goalRepo:        goalRepo,
		now:             time.Now,
	}
}

// resolveRange validates the window. With no bounds it covers the current
// year; a single bound is completed to the calendar year it falls in.
func (s *SummaryService) resolveRange(start, end *time.Time) (time.Time, time.Time, error) {
	var from, to time.Time
	switch {
	case start == nil && end == nil:
		from, to = util.YearBounds(s.now())
	case end == nil:
		from = util.StartOfDay(*start)
		_, to = util.YearBounds(from)
	case start == nil:
		to = util.StartOfDay(*end)
		from, _ = util.YearBounds(to)
	default:
		from, to = util.StartOfDay(*start), util.StartOfDay(*end)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	if util.MonthsBetween(from, to) > domain.MaxSummaryMonths {
		return time.Time{}, time.Time{}, domain.ErrDateRangeTooLarge
	}
	return from, to, nil
}

// GetSummary aggregates totals, budgets, goals and the monthly series for [start, end].
// Nil bounds default as in resolveRange.
func (s *SummaryService) GetSummary(ctx context.Context, start, end *time.Time) (*domain.Summary, error) {
	from, to, err := s.resolveRange(start, end)
	if err != nil {
		return nil, err
	}

	var (
		transactions []*domain.Transaction
		budgets      []*domain.BudgetStatus
		goals        []*domain.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.List(gctx, &domain.TransactionFilters{StartDate: &from, EndDate: &to})
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetService.GetBudgets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Start:             from,
		End:               to,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		TransactionsCount: len(transactions),
		Budgets:           budgets,
		Goals:             goals,
		Monthly:           monthlySeries(transactions, from, to),
	}

	expenses := newCategoryTotals()
	income := newCategoryTotals()
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
			income.add(tx.Category, tx.Amount)
		case domain.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
			expenses.add(tx.Category, tx.Amount)
		}
	}
	summary.TotalBalance = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.ExpenseByCategory = expenses.sorted()
	summary.IncomeByCategory = income.sorted()

	if summary.Budgets == nil {
		summary.Budgets = []*domain.BudgetStatus{}
	}
	if summary.Goals == nil {
		summary.Goals = []*domain.Goal{}
	}
	return summary, nil
}

// GetFinancialChart returns the zero-filled monthly income/expense series for [start, end]
func (s *SummaryService) GetFinancialChart(ctx context.Context, start, end *time.Time) ([]domain.MonthlyPoint, error) {
	from, to, err := s.resolveRange(start, end)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.List(ctx, &domain.TransactionFilters{StartDate: &from, EndDate: &to})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return monthlySeries(transactions, from, to), nil
}

// monthlySeries has one point per calendar month touched by [from, to], oldest first
func monthlySeries(transactions []*domain.Transaction, from, to time.Time) []domain.MonthlyPoint {
	keys := util.MonthKeys(from, to)
	points := make([]domain.MonthlyPoint, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		points[i] = domain.MonthlyPoint{Month: k, Income: decimal.Zero, Expense: decimal.Zero}
		index[k] = i
	}

	for _, tx := range transactions {
		i, ok := index[tx.Date.Format(util.MonthKeyLayout)]
		if !ok {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			points[i].Income = points[i].Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			points[i].Expense = points[i].Expense.Add(tx.Amount)
		}
	}
	return points
}

// categoryTotals groups amounts by category, ignoring case and surrounding space.
// The first spelling seen is the one reported.
type categoryTotals struct {
	order  []string
	names  map[string]string
	totals map[string]decimal.Decimal
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{
		names:  make(map[string]string),
		totals: make(map[string]decimal.Decimal),
	}
}

func (c *categoryTotals) add(category string, amount decimal.Decimal) {
	key := strings.ToLower(strings.TrimSpace(category))
	if _, ok := c.names[key]; !ok {
		c.names[key] = strings.TrimSpace(category)
		c.order = append(c.order, key)
		c.totals[key] = decimal.Zero
	}
	c.totals[key] = c.totals[key].Add(amount)
}

// sorted returns totals by amount descending, then category name
func (c *categoryTotals) sorted() []domain.CategoryAmount {
	out := make([]domain.CategoryAmount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, domain.CategoryAmount{Category: c.names[key], Amount: c.totals[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
