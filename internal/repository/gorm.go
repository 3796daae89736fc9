package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fintrack/internal/domain"
)

// GormUserRepository is the MySQL-backed UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a UserRepository on top of a gorm connection.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	// BINARY forces a case-sensitive comparison regardless of column collation.
	err := r.db.WithContext(ctx).Where("BINARY email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// GormStatementRepository is the MySQL-backed StatementRepository.
type GormStatementRepository struct {
	db *gorm.DB
}

// NewGormStatementRepository creates a StatementRepository on top of a gorm connection.
func NewGormStatementRepository(db *gorm.DB) *GormStatementRepository {
	return &GormStatementRepository{db: db}
}

func (r *GormStatementRepository) Create(ctx context.Context, statement *domain.Statement) error {
	if err := r.db.WithContext(ctx).Create(statement).Error; err != nil {
		return fmt.Errorf("create statement: %w", err)
	}
	return nil
}

func (r *GormStatementRepository) FindByID(ctx context.Context, id string) (*domain.Statement, error) {
	var statement domain.Statement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&statement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find statement by id: %w", err)
	}
	return &statement, nil
}

func (r *GormStatementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	var statements []domain.Statement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&statements).Error
	if err != nil {
		return nil, fmt.Errorf("list statements by user: %w", err)
	}
	return statements, nil
}

func (r *GormStatementRepository) List(ctx context.Context, offset, limit int) ([]domain.Statement, error) {
	var statements []domain.Statement
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&statements).Error
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	return statements, nil
}

func (r *GormStatementRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Statement{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return total, nil
}

// Compile-time checks: both gorm repositories satisfy the contracts.
var (
	_ UserRepository      = (*GormUserRepository)(nil)
	_ StatementRepository = (*GormStatementRepository)(nil)
)
