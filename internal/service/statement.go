package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/events"
	"fintrack/internal/repository"
)

// StatementCreatedTopic is the broker topic statement events are published to.
const StatementCreatedTopic = "statement_created"

// Balance is the result of a balance query: the user's full statement
// sequence plus the derived balance.
type Balance struct {
	Statements []domain.Statement `json:"statement"`
	Balance    decimal.Decimal    `json:"balance"`
}

// StatementService implements the ledger use cases. The balance is never
// stored; it is recomputed from the statement sequence on every read, so the
// ledger stays the single source of truth.
type StatementService struct {
	users      repository.UserRepository
	statements repository.StatementRepository
	publisher  events.Publisher

	userMu map[string]*sync.Mutex // per-user lock, guards check-then-append
	mapMu  sync.Mutex             // protects userMu itself
}

// NewStatementService creates a StatementService over the given repositories.
func NewStatementService(users repository.UserRepository, statements repository.StatementRepository, publisher events.Publisher) *StatementService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &StatementService{
		users:      users,
		statements: statements,
		publisher:  publisher,
		userMu:     make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing mutations for one user, creating it
// on first use.
func (s *StatementService) userLock(userID string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()
	if _, exists := s.userMu[userID]; !exists {
		s.userMu[userID] = &sync.Mutex{}
	}
	return s.userMu[userID]
}

// sumBalance computes sum(deposits) - sum(withdrawals) over a statement
// sequence.
func sumBalance(entries []domain.Statement) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		if entry.Type == domain.OperationDeposit {
			balance = balance.Add(entry.Amount)
		} else {
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance
}

// CreateStatement validates and appends one ledger entry. Withdrawals are
// admitted only when the amount does not exceed the balance computed
// immediately before the append; the per-user lock keeps concurrent calls
// from both observing the same pre-withdrawal balance.
func (s *StatementService) CreateStatement(ctx context.Context, userID string, opType domain.OperationType, amount decimal.Decimal, description string) (*domain.Statement, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if opType == domain.OperationWithdraw {
		entries, err := s.statements.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if amount.GreaterThan(sumBalance(entries)) {
			return nil, domain.ErrInsufficientFunds
		}
	}

	statement := &domain.Statement{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.statements.Create(ctx, statement); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"statement_id": statement.ID,
		"type":         statement.Type,
		"amount":       statement.Amount.String(),
	}).Info("Statement created")

	// Best-effort: a publish failure must not undo a persisted statement.
	if err := s.publisher.Publish(StatementCreatedTopic, events.StatementCreated{
		StatementID: statement.ID,
		UserID:      statement.UserID,
		Type:        statement.Type,
		Amount:      statement.Amount,
		Description: statement.Description,
		OccurredAt:  statement.CreatedAt,
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"statement_id": statement.ID,
			"error":        err.Error(),
		}).Warn("Failed to publish statement event")
	}

	return statement, nil
}

// GetBalance returns the user's statements and derived balance. A user with
// no statements has balance zero.
func (s *StatementService) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	entries, err := s.statements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Balance{Statements: entries, Balance: sumBalance(entries)}, nil
}

// GetStatementOperation returns one statement of the given user. A statement
// belonging to a different user resolves to ErrStatementNotFound so a foreign
// id is indistinguishable from a missing one.
func (s *StatementService) GetStatementOperation(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	statement, err := s.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement == nil || statement.UserID != userID {
		return nil, domain.ErrStatementNotFound
	}
	return statement, nil
}
