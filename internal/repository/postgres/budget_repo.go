package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, name, category, monthly_limit::text, alert_threshold::text, created_at, updated_at`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a budget
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (name, category, monthly_limit, alert_threshold)
		VALUES ($1, $2, $3::numeric, $4::numeric)
		RETURNING `+budgetColumns,
		budget.Name, budget.Category, budget.MonthlyLimit.String(), budget.AlertThreshold.String(),
	)
	created, err := scanBudget(row)
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return created, nil
}

// GetByID retrieves a budget by its ID
func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*domain.Budget, error) {
	return r.getOne(ctx, r.pool, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
}

// List retrieves all budgets ordered by ID
func (r *BudgetRepository) List(ctx context.Context) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	return collect(rows, scanBudget)
}

// FindByCategory returns the oldest budget tracking category
func (r *BudgetRepository) FindByCategory(ctx context.Context, category string) (*domain.Budget, error) {
	return r.getOne(ctx, r.pool, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE LOWER(TRIM(category)) = LOWER(TRIM($1))
		ORDER BY id LIMIT 1`, category)
}

// Update locks the budget row, applies fn and writes the result in one transaction
func (r *BudgetRepository) Update(ctx context.Context, id int64, fn func(*domain.Budget) error) (*domain.Budget, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := r.getOne(ctx, tx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	if err := fn(current); err != nil {
		return nil, err
	}

	updated, err := scanBudget(tx.QueryRow(ctx, `
		UPDATE budgets
		SET name = $2, category = $3, monthly_limit = $4::numeric, alert_threshold = $5::numeric, updated_at = NOW()
		WHERE id = $1
		RETURNING `+budgetColumns,
		id, current.Name, current.Category, current.MonthlyLimit.String(), current.AlertThreshold.String(),
	))
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *BudgetRepository) getOne(ctx context.Context, q querier, sql string, args ...any) (*domain.Budget, error) {
	b, err := scanBudget(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return b, nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b         domain.Budget
		limit     string
		threshold string
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Category, &limit, &threshold, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if b.MonthlyLimit, err = parseNumeric(limit); err != nil {
		return nil, err
	}
	if b.AlertThreshold, err = parseNumeric(threshold); err != nil {
		return nil, err
	}
	return &b, nil
}
