package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const goalColumns = `id, name, target_amount::text, saved_amount::text, target_date, description, created_at, updated_at`

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create inserts a goal
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (name, target_amount, saved_amount, target_date, description)
		VALUES ($1, $2::numeric, $3::numeric, $4, $5)
		RETURNING `+goalColumns,
		goal.Name, goal.TargetAmount.String(), goal.SavedAmount.String(), goal.TargetDate, goal.Description,
	)
	created, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return created, nil
}

// GetByID retrieves a goal by its ID
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	return r.getOne(ctx, r.pool, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
}

// List retrieves all goals ordered by ID
func (r *GoalRepository) List(ctx context.Context) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	return collect(rows, scanGoal)
}

// Update locks the goal row, applies fn and writes the result in one transaction
func (r *GoalRepository) Update(ctx context.Context, id int64, fn func(*domain.Goal) error) (*domain.Goal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := r.getOne(ctx, tx, `SELECT `+goalColumns+` FROM goals WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	if err := fn(current); err != nil {
		return nil, err
	}

	updated, err := scanGoal(tx.QueryRow(ctx, `
		UPDATE goals
		SET name = $2, target_amount = $3::numeric, saved_amount = $4::numeric,
		    target_date = $5, description = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING `+goalColumns,
		id, current.Name, current.TargetAmount.String(), current.SavedAmount.String(), current.TargetDate, current.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *GoalRepository) getOne(ctx context.Context, q querier, sql string, args ...any) (*domain.Goal, error) {
	g, err := scanGoal(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return g, nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		g      domain.Goal
		target string
		saved  string
	)
	if err := row.Scan(&g.ID, &g.Name, &target, &saved, &g.TargetDate, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if g.TargetAmount, err = parseNumeric(target); err != nil {
		return nil, err
	}
	if g.SavedAmount, err = parseNumeric(saved); err != nil {
		return nil, err
	}
	return &g, nil
}
