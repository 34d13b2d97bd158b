package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/domain"
	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionEvaluator runs alert rules against a stored transaction
type TransactionEvaluator interface {
	EvaluateTransaction(ctx context.Context, transaction *domain.Transaction)
}

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	evaluator       TransactionEvaluator
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// SetEvaluator sets the alert rules run after each create
func (s *TransactionService) SetEvaluator(evaluator TransactionEvaluator) {
	s.evaluator = evaluator
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Category    string
	Type        domain.TransactionType
	Description *string
	Date        *time.Time
}

// CreateTransaction validates and stores a transaction, then evaluates alert rules
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	// Defaults to today
	date := util.StartOfDay(s.now().UTC())
	if input.Date != nil {
		date = util.StartOfDay(*input.Date)
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			description = &trimmed
		}
	}

	transaction := &domain.Transaction{
		Amount:      input.Amount.Abs(),
		Category:    strings.TrimSpace(input.Category),
		Type:        input.Type,
		Description: description,
		Date:        date,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, transaction)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create transaction")
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	log.Info().
		Int64("transaction_id", created.ID).
		Str("type", string(created.Type)).
		Str("category", created.Category).
		Str("amount", created.Amount.String()).
		Msg("Transaction created")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.TransactionCreated(created))
	}
	if s.evaluator != nil {
		s.evaluator.EvaluateTransaction(ctx, created)
	}
	return created, nil
}

// GetTransactionByID retrieves a transaction
func (s *TransactionService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// GetTransactions returns transactions matching filters in the requested order.
// Without a sort field they come back in insertion order.
func (s *TransactionService) GetTransactions(ctx context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, domain.ErrInvalidDateRange
	}

	transactions, err := s.transactionRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if filters != nil {
		domain.SortTransactions(transactions, filters.SortBy, filters.Order)
	}
	return transactions, nil
}
