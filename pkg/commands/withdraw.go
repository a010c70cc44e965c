package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdraw debits an account subject to the available-balance check.
type Withdraw struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
}
