// Package commands defines the plain request structures accepted by the
// transaction engine entry points.
package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit credits an account.
type Deposit struct {
	AccountID       uuid.UUID
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber *string
}
