package domain

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Transaction errors
var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("amount must be a non-zero number with at most 2 decimal places, below 1,000,000,000,000")
	ErrInvalidTransactionType = errors.New("type must be INCOME or EXPENSE")
	ErrInvalidDate            = errors.New("date is not a valid date")
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// ParseTransactionType normalizes s (case-insensitive) to a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionTypeIncome:
		return TransactionTypeIncome, nil
	case TransactionTypeExpense:
		return TransactionTypeExpense, nil
	}
	return "", ErrInvalidTransactionType
}

// Transaction is immutable once stored. Amount is always a positive magnitude;
// the sign is carried by Type.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SignedAmount returns the amount as displayed: expenses negative, income positive
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// InRange reports whether the transaction date falls in [start, end] (day granularity, inclusive)
func (t *Transaction) InRange(start, end time.Time) bool {
	d := util.StartOfDay(t.Date)
	return !d.Before(util.StartOfDay(start)) && !d.After(util.StartOfDay(end))
}

// TypeFilter selects transactions by type
type TypeFilter string

const (
	TypeFilterAll     TypeFilter = "ALL"
	TypeFilterIncome  TypeFilter = "INCOME"
	TypeFilterExpense TypeFilter = "EXPENSE"
)

// SortField selects the ordering key for transaction lists
type SortField string

const (
	SortNone   SortField = ""
	SortDate   SortField = "date"
	SortAmount SortField = "amount"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type TransactionFilters struct {
	Type      TypeFilter
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortField
	Order     SortOrder
}

// Matches reports whether t passes every filter that is set
func (f *TransactionFilters) Matches(t *Transaction) bool {
	if f == nil {
		return true
	}
	switch f.Type {
	case TypeFilterIncome:
		if t.Type != TransactionTypeIncome {
			return false
		}
	case TypeFilterExpense:
		if t.Type != TransactionTypeExpense {
			return false
		}
	}
	if f.Category != nil && !SameCategory(*f.Category, t.Category) {
		return false
	}
	if f.StartDate != nil && util.StartOfDay(t.Date).Before(util.StartOfDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && util.StartOfDay(t.Date).After(util.StartOfDay(*f.EndDate)) {
		return false
	}
	return true
}

// SameCategory compares categories ignoring case and surrounding whitespace
func SameCategory(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// TransactionRepository stores transactions in insertion order
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	// List returns matching transactions in insertion order; sorting is applied by the service
	List(ctx context.Context, filters *TransactionFilters) ([]*Transaction, error)
	SumExpensesByCategory(ctx context.Context, category string, start, end time.Time) (decimal.Decimal, error)
}

// SortTransactions orders txs in place by the given field. Ties keep insertion order
// regardless of direction. SortNone leaves the slice untouched.
func SortTransactions(txs []*Transaction, by SortField, order SortOrder) {
	if by == SortNone {
		return
	}
	desc := order == SortDesc
	sort.SliceStable(txs, func(i, j int) bool {
		var c int
		switch by {
		case SortDate:
			c = txs[i].Date.Compare(txs[j].Date)
		case SortAmount:
			c = txs[i].Amount.Abs().Cmp(txs[j].Amount.Abs())
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// Validate checks a transaction before it is stored
func (t *Transaction) Validate() error {
	if t.Amount.IsZero() || !validMoney(t.Amount) {
		return ErrInvalidAmount
	}
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return ErrInvalidTransactionType
	}
	category := strings.TrimSpace(t.Category)
	if category == "" {
		return ErrCategoryRequired
	}
	if len(category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if t.Description != nil && len(*t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
