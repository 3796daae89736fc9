package events

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// StatementCreated is emitted after a ledger entry has been persisted.
type StatementCreated struct {
	StatementID string               `json:"statement_id"`
	UserID      string               `json:"user_id"`
	Type        domain.OperationType `json:"type"`
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

// Publisher delivers events to downstream consumers. Publishing is
// best-effort from the service's point of view: a failed publish never rolls
// back a persisted statement.
type Publisher interface {
	Publish(topic string, event any) error
}

// NopPublisher discards every event. Used in tests and when no broker is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(topic string, event any) error { return nil }

var _ Publisher = NopPublisher{}
