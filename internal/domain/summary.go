package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxSummaryMonths bounds the monthly series a single request may ask for
const MaxSummaryMonths = 120

// CategoryAmount is the total for one category inside a summary window
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyPoint is one bucket of the income/expense chart series
type MonthlyPoint struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Summary is recomputed on every request and never persisted
type Summary struct {
	Start             time.Time
	End               time.Time
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	TotalBalance      decimal.Decimal
	TransactionsCount int
	Budgets           []*BudgetStatus
	Goals             []*Goal
	ExpenseByCategory []CategoryAmount
	IncomeByCategory  []CategoryAmount
	Monthly           []MonthlyPoint
}
