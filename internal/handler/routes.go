package handler

import (
	"github.com/budgetassist/budget-assist-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler served under /api/v1
type Handlers struct {
	Transactions  *TransactionHandler
	Budgets       *BudgetHandler
	Goals         *GoalHandler
	Summary       *SummaryHandler
	Notifications *NotificationHandler
	WebSocket     *WebSocketHandler
}

// RegisterRoutes sets up all API routes. A nil authMiddleware leaves the API open.
// extra middleware runs after authentication on every /api/v1 route.
// Trailing slashes are stripped by the server's pre-router middleware, so
// /api/v1/transactions/ and /api/v1/transactions resolve to the same route.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, h Handlers, extra ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1")
	if authMiddleware != nil {
		api.Use(authMiddleware.Authenticate())
	}
	api.Use(extra...)

	transactions := api.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.GetTransactions)
	transactions.GET("/:id", h.Transactions.GetTransaction)

	budgets := api.Group("/budgets")
	budgets.POST("", h.Budgets.CreateBudget)
	budgets.GET("", h.Budgets.GetBudgets)
	budgets.GET("/:id", h.Budgets.GetBudget)
	budgets.PUT("/:id", h.Budgets.UpdateBudget)

	goals := api.Group("/goals")
	goals.POST("", h.Goals.CreateGoal)
	goals.GET("", h.Goals.GetGoals)
	goals.GET("/:id", h.Goals.GetGoal)
	goals.PUT("/:id", h.Goals.UpdateGoal)

	summary := api.Group("/summary")
	summary.GET("", h.Summary.GetSummary)
	summary.GET("/financial-chart", h.Summary.GetFinancialChart)

	notifications := api.Group("/notifications")
	notifications.GET("", h.Notifications.GetNotifications)
	notifications.GET("/unread-count", h.Notifications.GetUnreadCount)
	notifications.POST("/:id/read", h.Notifications.MarkRead)
	notifications.POST("/webhooks", h.Notifications.RegisterWebhook)
	notifications.GET("/webhooks", h.Notifications.GetWebhooks)
	notifications.DELETE("/webhooks/:id", h.Notifications.DeleteWebhook)

	// Live push lives outside the versioned API
	if h.WebSocket != nil {
		if authMiddleware != nil {
			e.GET("/ws", h.WebSocket.HandleWS, authMiddleware.Authenticate())
		} else {
			e.GET("/ws", h.WebSocket.HandleWS)
		}
	}
}
