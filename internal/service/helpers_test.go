package service

import (
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func expense(amount, category string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     domain.TransactionTypeExpense,
		Date:     date,
	}
}

func income(amount, category string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     domain.TransactionTypeIncome,
		Date:     date,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
