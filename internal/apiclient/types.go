package apiclient

import "github.com/shopspring/decimal"

// Transaction as returned by the API. Dates are YYYY-MM-DD.
type Transaction struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	SignedAmount decimal.Decimal `json:"signed_amount"`
	Category     string          `json:"category"`
	Type         string          `json:"type"`
	Description  *string         `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"created_at"`
}

type Budget struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	MonthlyLimit         decimal.Decimal `json:"monthly_limit"`
	AlertThreshold       decimal.Decimal `json:"alert_threshold"`
	SpentThisMonth       decimal.Decimal `json:"spent_this_month"`
	BudgetUsedPercentage decimal.Decimal `json:"budget_used_percentage"`
	RemainingBudget      decimal.Decimal `json:"remaining_budget"`
	IsOverThreshold      bool            `json:"is_over_threshold"`
	IsExceeded           bool            `json:"is_exceeded"`
}

type Goal struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	SavedAmount     decimal.Decimal `json:"saved_amount"`
	TargetDate      *string         `json:"target_date"`
	Description     *string         `json:"description"`
	Progress        decimal.Decimal `json:"progress"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	IsCompleted     bool            `json:"is_completed"`
}

type Notification struct {
	ID               int64  `json:"id"`
	NotificationType string `json:"notification_type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	CreatedAt        string `json:"created_at"`
	Read             bool   `json:"read"`
}

type MonthlyPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the dashboard aggregate. A degraded read yields the zero value
// with empty slices.
type Summary struct {
	Start             string           `json:"start"`
	End               string           `json:"end"`
	TotalBalance      decimal.Decimal  `json:"total_balance"`
	TotalIncome       decimal.Decimal  `json:"total_income"`
	TotalExpense      decimal.Decimal  `json:"total_expense"`
	TransactionsCount int              `json:"transactions_count"`
	Budgets           []Budget         `json:"budgets"`
	Goals             []Goal           `json:"goals"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
	IncomeByCategory  []CategoryAmount `json:"income_by_category"`
	Monthly           []MonthlyPoint   `json:"monthly"`
}

// CreateTransactionRequest is the POST /transactions body
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description *string         `json:"description,omitempty"`
	Date        *string         `json:"date,omitempty"`
}

// CreateBudgetRequest is the POST /budgets body
type CreateBudgetRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	MonthlyLimit   decimal.Decimal `json:"monthly_limit"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
}

// CreateGoalRequest is the POST /goals body
type CreateGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	SavedAmount  decimal.Decimal `json:"saved_amount"`
	TargetDate   *string         `json:"target_date,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

// UpdateGoalRequest is a partial PUT /goals/{id} body; nil fields are omitted
type UpdateGoalRequest struct {
	Name         *string          `json:"name,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	SavedAmount  *decimal.Decimal `json:"saved_amount,omitempty"`
	TargetDate   *string          `json:"target_date,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

// TransactionQuery narrows GET /transactions; zero values are not sent
type TransactionQuery struct {
	Type     string
	Category string
	Start    string
	End      string
	SortBy   string
	Order    string
}
