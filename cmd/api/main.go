package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/config"
	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/handler"
	"github.com/budgetassist/budget-assist-backend/internal/middleware"
	"github.com/budgetassist/budget-assist-backend/internal/notifier"
	"github.com/budgetassist/budget-assist-backend/internal/repository/memory"
	"github.com/budgetassist/budget-assist-backend/internal/repository/postgres"
	"github.com/budgetassist/budget-assist-backend/internal/service"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// repositories bundles the store implementations selected at start-up
type repositories struct {
	transactions  domain.TransactionRepository
	budgets       domain.BudgetRepository
	goals         domain.GoalRepository
	notifications domain.NotificationRepository
	webhooks      domain.WebhookRepository
}

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	repos, closeStore := openRepositories(cfg)
	defer closeStore()

	if cfg.SeedDemoData {
		if err := service.SeedDemoData(context.Background(), repos.transactions, repos.budgets, repos.goals, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		log.Info().Msg("Demo data loaded")
	}

	// Live push hub
	hub := websocket.NewHub()

	// Alert sinks
	sinks := []notifier.Sink{
		notifier.NewWebhookSink(repos.webhooks, &http.Client{Timeout: cfg.WebhookTimeout}),
	}
	if cfg.AMQP.URL != "" {
		amqpSink, err := notifier.DialAMQPSink(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("AMQP alert sink enabled")
	}
	dispatcher := notifier.NewDispatcher(log.Logger, cfg.WebhookTimeout, sinks...)

	// Initialize services
	notificationService := service.NewNotificationService(repos.notifications)
	notificationService.SetDispatcher(dispatcher)
	notificationService.SetEventPublisher(hub)

	alertService := service.NewAlertService(repos.transactions, repos.budgets, notificationService, cfg.LargeTransactionThreshold, log.Logger)

	transactionService := service.NewTransactionService(repos.transactions)
	transactionService.SetEvaluator(alertService)
	transactionService.SetEventPublisher(hub)

	budgetService := service.NewBudgetService(repos.budgets, repos.transactions)
	budgetService.SetEventPublisher(hub)

	goalService := service.NewGoalService(repos.goals)
	goalService.SetNotificationService(notificationService)
	goalService.SetEventPublisher(hub)

	summaryService := service.NewSummaryService(repos.transactions, budgetService, repos.goals)
	webhookService := service.NewWebhookService(repos.webhooks)

	// Start goal due-date worker
	goalWorker := service.NewGoalDueWorker(repos.goals, notificationService, log.Logger, service.GoalDueWorkerConfig{
		Interval:   cfg.GoalCheckInterval,
		WindowDays: cfg.GoalDueWindowDays,
	})
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	goalWorker.Start(workerCtx)

	// Initialize auth middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.AuthEnabled() {
		authMiddleware, err = middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
	} else {
		log.Warn().Msg("AUTH0_DOMAIN not set, API is unauthenticated")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Trailing slashes are optional on every route
	e.Pre(echomiddleware.RemoveTrailingSlash())

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":         "ok",
			"ws_clients":     hub.ClientCount(),
			"goal_worker_up": goalWorker.IsRunning(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, handler.Handlers{
		Transactions:  handler.NewTransactionHandler(transactionService),
		Budgets:       handler.NewBudgetHandler(budgetService),
		Goals:         handler.NewGoalHandler(goalService),
		Summary:       handler.NewSummaryHandler(summaryService),
		Notifications: handler.NewNotificationHandler(notificationService, webhookService),
		WebSocket:     handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}, middleware.RateLimitMiddleware(rateLimiter)) // per caller, after auth

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	goalWorker.Stop()
	rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let in-flight alert deliveries finish
	dispatcher.Wait()

	log.Info().Msg("Server exited")
}

// openRepositories picks postgres when DATABASE_URL is set and the in-memory
// store otherwise. The returned func releases the store.
func openRepositories(cfg *config.Config) (repositories, func()) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL not set, using in-memory store")
		return repositories{
			transactions:  memory.NewTransactionRepository(),
			budgets:       memory.NewBudgetRepository(),
			goals:         memory.NewGoalRepository(),
			notifications: memory.NewNotificationRepository(),
			webhooks:      memory.NewWebhookRepository(),
		}, func() {}
	}

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	return repositories{
		transactions:  postgres.NewTransactionRepository(pool),
		budgets:       postgres.NewBudgetRepository(pool),
		goals:         postgres.NewGoalRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		webhooks:      postgres.NewWebhookRepository(pool),
	}, pool.Close
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
