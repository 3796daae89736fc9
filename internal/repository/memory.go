package repository

import (
	"context"
	"sync"

	"fintrack/internal/domain"
)

// MemoryUserRepository is an in-memory UserRepository, safe for concurrent
// use. Each instance owns its state, so tests can build isolated fixtures.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users []domain.User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make([]domain.User, 0)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		// Exact match, case-sensitive.
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.users) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	out := make([]domain.User, end-offset)
	copy(out, r.users[offset:end])
	return out, nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// MemoryStatementRepository is an in-memory StatementRepository. Entries are
// held in a slice so insertion order is the iteration order.
type MemoryStatementRepository struct {
	mu         sync.Mutex
	statements []domain.Statement
}

// NewMemoryStatementRepository creates an empty in-memory statement repository.
func NewMemoryStatementRepository() *MemoryStatementRepository {
	return &MemoryStatementRepository{statements: make([]domain.Statement, 0)}
}

func (r *MemoryStatementRepository) Create(ctx context.Context, statement *domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, *statement)
	return nil
}

func (r *MemoryStatementRepository) FindByID(ctx context.Context, id string) (*domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.statements {
		if r.statements[i].ID == id {
			statement := r.statements[i]
			return &statement, nil
		}
	}
	return nil, nil
}

func (r *MemoryStatementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Statement, 0)
	for _, s := range r.statements {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryStatementRepository) List(ctx context.Context, offset, limit int) ([]domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.statements) {
		return []domain.Statement{}, nil
	}
	end := offset + limit
	if end > len(r.statements) {
		end = len(r.statements)
	}
	out := make([]domain.Statement, end-offset)
	copy(out, r.statements[offset:end])
	return out, nil
}

func (r *MemoryStatementRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.statements)), nil
}

// Compile-time checks: both memory repositories satisfy the contracts.
var (
	_ UserRepository      = (*MemoryUserRepository)(nil)
	_ StatementRepository = (*MemoryStatementRepository)(nil)
)
