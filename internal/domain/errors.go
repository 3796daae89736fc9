package domain

import "errors"

// Domain errors. Callers distinguish them with errors.Is and map them to
// transport responses; storage faults are never wrapped into these.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrStatementNotFound = errors.New("statement not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateEmail    = errors.New("email already registered")
)
