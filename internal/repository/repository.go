package repository

import (
	"context"

	"fintrack/internal/domain"
)

// UserRepository stores user identity records. FindByID and FindByEmail
// return (nil, nil) when no record matches; a non-nil error always means a
// storage fault, never a domain condition.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// StatementRepository is pure storage for ledger entries. It performs no
// validation of user existence or amount sign; that is the service's job.
type StatementRepository interface {
	Create(ctx context.Context, statement *domain.Statement) error
	FindByID(ctx context.Context, id string) (*domain.Statement, error)
	// ListByUser returns the user's statements in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.Statement, error)
	List(ctx context.Context, offset, limit int) ([]domain.Statement, error)
	Count(ctx context.Context) (int64, error)
}
