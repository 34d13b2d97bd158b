package handler

import (
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
)

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID           int64   `json:"id"`
	Amount       float64 `json:"amount"`
	SignedAmount float64 `json:"signed_amount"`
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	Description  *string `json:"description"`
	Date         string  `json:"date"`
	CreatedAt    string  `json:"created_at"`
}

// BudgetResponse represents a budget with its derived fields
type BudgetResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	MonthlyLimit         float64 `json:"monthly_limit"`
	AlertThreshold       float64 `json:"alert_threshold"`
	SpentThisMonth       float64 `json:"spent_this_month"`
	BudgetUsedPercentage float64 `json:"budget_used_percentage"`
	RemainingBudget      float64 `json:"remaining_budget"`
	IsOverThreshold      bool    `json:"is_over_threshold"`
	IsExceeded           bool    `json:"is_exceeded"`
	CreatedAt            string  `json:"created_at"`
}

// GoalResponse represents a goal with its derived fields
type GoalResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	TargetAmount    float64 `json:"target_amount"`
	SavedAmount     float64 `json:"saved_amount"`
	TargetDate      *string `json:"target_date"`
	Description     *string `json:"description"`
	Progress        float64 `json:"progress"`
	RemainingAmount float64 `json:"remaining_amount"`
	IsCompleted     bool    `json:"is_completed"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID               int64  `json:"id"`
	NotificationType string `json:"notification_type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	CreatedAt        string `json:"created_at"`
	Read             bool   `json:"read"`
}

// CategoryAmountResponse is one row of a per-category breakdown
type CategoryAmountResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthlyPointResponse is one month of the chart series
type MonthlyPointResponse struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// SummaryResponse is the dashboard summary payload
type SummaryResponse struct {
	Start             string                   `json:"start"`
	End               string                   `json:"end"`
	TotalBalance      float64                  `json:"total_balance"`
	TotalIncome       float64                  `json:"total_income"`
	TotalExpense      float64                  `json:"total_expense"`
	TransactionsCount int                      `json:"transactions_count"`
	Budgets           []BudgetResponse         `json:"budgets"`
	Goals             []GoalResponse           `json:"goals"`
	ExpenseByCategory []CategoryAmountResponse `json:"expense_by_category"`
	IncomeByCategory  []CategoryAmountResponse `json:"income_by_category"`
	Monthly           []MonthlyPointResponse   `json:"monthly"`
}

// WebhookResponse represents a registered webhook
type WebhookResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Amount:       t.Amount.InexactFloat64(),
		SignedAmount: t.SignedAmount().InexactFloat64(),
		Category:     t.Category,
		Type:         string(t.Type),
		Description:  t.Description,
		Date:         t.Date.Format(dateLayout),
		CreatedAt:    formatTimestamp(t.CreatedAt),
	}
}

func toTransactionResponses(txs []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toTransactionResponse(t)
	}
	return out
}

func toBudgetResponse(b *domain.BudgetStatus) BudgetResponse {
	return BudgetResponse{
		ID:                   b.ID,
		Name:                 b.Name,
		Category:             b.Category,
		MonthlyLimit:         b.MonthlyLimit.InexactFloat64(),
		AlertThreshold:       b.AlertThreshold.InexactFloat64(),
		SpentThisMonth:       b.SpentThisMonth.InexactFloat64(),
		BudgetUsedPercentage: b.BudgetUsedPercentage.InexactFloat64(),
		RemainingBudget:      b.RemainingBudget.InexactFloat64(),
		IsOverThreshold:      b.IsOverThreshold,
		IsExceeded:           b.IsExceeded,
		CreatedAt:            formatTimestamp(b.CreatedAt),
	}
}

func toBudgetResponses(budgets []*domain.BudgetStatus) []BudgetResponse {
	out := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = toBudgetResponse(b)
	}
	return out
}

func toGoalResponse(g *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:              g.ID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount.InexactFloat64(),
		SavedAmount:     g.SavedAmount.InexactFloat64(),
		Description:     g.Description,
		Progress:        g.Progress().InexactFloat64(),
		RemainingAmount: g.RemainingAmount().InexactFloat64(),
		IsCompleted:     g.IsCompleted(),
		CreatedAt:       formatTimestamp(g.CreatedAt),
		UpdatedAt:       formatTimestamp(g.UpdatedAt),
	}
	if g.TargetDate != nil {
		d := g.TargetDate.Format(dateLayout)
		resp.TargetDate = &d
	}
	return resp
}

func toGoalResponses(goals []*domain.Goal) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = toGoalResponse(g)
	}
	return out
}

func toNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:               n.ID,
		NotificationType: string(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		CreatedAt:        formatTimestamp(n.CreatedAt),
		Read:             n.Read,
	}
}

func toNotificationResponses(ns []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		out[i] = toNotificationResponse(n)
	}
	return out
}

func toCategoryAmounts(rows []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(rows))
	for i, r := range rows {
		out[i] = CategoryAmountResponse{Category: r.Category, Amount: r.Amount.InexactFloat64()}
	}
	return out
}

func toMonthlyPoints(points []domain.MonthlyPoint) []MonthlyPointResponse {
	out := make([]MonthlyPointResponse, len(points))
	for i, p := range points {
		out[i] = MonthlyPointResponse{
			Month:   p.Month,
			Income:  p.Income.InexactFloat64(),
			Expense: p.Expense.InexactFloat64(),
		}
	}
	return out
}

func toSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		Start:             s.Start.Format(dateLayout),
		End:               s.End.Format(dateLayout),
		TotalBalance:      s.TotalBalance.InexactFloat64(),
		TotalIncome:       s.TotalIncome.InexactFloat64(),
		TotalExpense:      s.TotalExpense.InexactFloat64(),
		TransactionsCount: s.TransactionsCount,
		Budgets:           toBudgetResponses(s.Budgets),
		Goals:             toGoalResponses(s.Goals),
		ExpenseByCategory: toCategoryAmounts(s.ExpenseByCategory),
		IncomeByCategory:  toCategoryAmounts(s.IncomeByCategory),
		Monthly:           toMonthlyPoints(s.Monthly),
	}
}

func toWebhookResponse(w *domain.Webhook) WebhookResponse {
	return WebhookResponse{ID: w.ID, URL: w.URL, CreatedAt: formatTimestamp(w.CreatedAt)}
}
