package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType enumerates the two kinds of ledger entries.
type OperationType string

const (
	OperationDeposit  OperationType = "deposit"  // Money entering the account
	OperationWithdraw OperationType = "withdraw" // Money leaving the account
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	return t == OperationDeposit || t == OperationWithdraw
}

// Statement Model: one immutable ledger entry. Statements are append-only;
// there is no update or delete path anywhere in the service.
type Statement struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`           // UUID primary key
	UserID      string          `gorm:"size:36;index;not null" json:"user_id"`  // Owning user (unenforced FK)
	Type        OperationType   `gorm:"size:16;not null" json:"type"`           // deposit or withdraw
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"` // Non-negative quantity
	Description string          `json:"description"`                            // Free text
	CreatedAt   time.Time       `json:"created_at"`                             // Timestamp of creation
}
