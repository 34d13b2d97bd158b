package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Goal errors
var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrInvalidTargetAmount = errors.New("target amount must be greater than 0 with at most 2 decimal places")
	ErrInvalidSavedAmount  = errors.New("saved amount must not be negative and have at most 2 decimal places")
)

// Goal is a savings target. Progress is derived, never stored.
type Goal struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	SavedAmount  decimal.Decimal `json:"saved_amount"`
	TargetDate   *time.Time      `json:"target_date,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate checks the stored fields of a goal
func (g *Goal) Validate() error {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !g.TargetAmount.IsPositive() || !validMoney(g.TargetAmount) {
		return ErrInvalidTargetAmount
	}
	if g.SavedAmount.IsNegative() || !validMoney(g.SavedAmount) {
		return ErrInvalidSavedAmount
	}
	if g.Description != nil && len(*g.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Progress returns saved/target clamped to [0, 1]
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.SavedAmount.Div(g.TargetAmount)
	one := decimal.NewFromInt(1)
	if p.GreaterThan(one) {
		return one
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// RemainingAmount is how much is still needed, never negative
func (g *Goal) RemainingAmount() decimal.Decimal {
	r := g.TargetAmount.Sub(g.SavedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// IsCompleted reports whether the saved amount has reached the target
func (g *Goal) IsCompleted() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}

// GoalUpdate holds a partial update; nil fields are left unchanged.
// A blank Description clears it, as does ClearTargetDate for the target date.
type GoalUpdate struct {
	Name            *string
	TargetAmount    *decimal.Decimal
	SavedAmount     *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Description     *string
}

// Apply merges the set fields of u into g
func (u *GoalUpdate) Apply(g *Goal) {
	if u.Name != nil {
		g.Name = strings.TrimSpace(*u.Name)
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.SavedAmount != nil {
		g.SavedAmount = *u.SavedAmount
	}
	switch {
	case u.ClearTargetDate:
		g.TargetDate = nil
	case u.TargetDate != nil:
		d := *u.TargetDate
		g.TargetDate = &d
	}
	if u.Description != nil {
		if desc := strings.TrimSpace(*u.Description); desc != "" {
			g.Description = &desc
		} else {
			g.Description = nil
		}
	}
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) (*Goal, error)
	GetByID(ctx context.Context, id int64) (*Goal, error)
	List(ctx context.Context) ([]*Goal, error)
	// Update applies fn to the current goal atomically and persists the result
	Update(ctx context.Context, id int64, fn func(*Goal) error) (*Goal, error)
}
