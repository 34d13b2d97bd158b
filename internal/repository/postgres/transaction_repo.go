package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, amount::text, category, type, description, date, created_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction and returns the stored row
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (amount, category, type, description, date)
		VALUES ($1::numeric, $2, $3, $4, $5)
		RETURNING `+transactionColumns,
		transaction.Amount.String(),
		transaction.Category,
		string(transaction.Type),
		transaction.Description,
		transaction.Date,
	)
	created, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return created, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// List retrieves transactions matching filters in insertion order
func (r *TransactionRepository) List(ctx context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters != nil {
		switch filters.Type {
		case domain.TypeFilterIncome:
			conditions = append(conditions, "type = "+arg(string(domain.TransactionTypeIncome)))
		case domain.TypeFilterExpense:
			conditions = append(conditions, "type = "+arg(string(domain.TransactionTypeExpense)))
		}
		if filters.Category != nil {
			conditions = append(conditions, "LOWER(TRIM(category)) = LOWER(TRIM("+arg(*filters.Category)+"))")
		}
		if filters.StartDate != nil {
			conditions = append(conditions, "date >= "+arg(*filters.StartDate)+"::date")
		}
		if filters.EndDate != nil {
			conditions = append(conditions, "date <= "+arg(*filters.EndDate)+"::date")
		}
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return collect(rows, scanTransaction)
}

// SumExpensesByCategory sums EXPENSE amounts for a category within [start, end]
func (r *TransactionRepository) SumExpensesByCategory(ctx context.Context, category string, start, end time.Time) (decimal.Decimal, error) {
	var total string
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE type = 'EXPENSE'
		  AND LOWER(TRIM(category)) = LOWER(TRIM($1))
		  AND date BETWEEN $2::date AND $3::date`,
		category, start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return parseNumeric(total)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx     domain.Transaction
		amount string
		txType string
	)
	if err := row.Scan(&tx.ID, &amount, &tx.Category, &txType, &tx.Description, &tx.Date, &tx.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := parseNumeric(amount)
	if err != nil {
		return nil, err
	}
	tx.Amount = parsed
	tx.Type = domain.TransactionType(txType)
	tx.Date = tx.Date.UTC()
	return &tx, nil
}
