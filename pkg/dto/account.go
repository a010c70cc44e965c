package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCreate carries the fields for opening an account. The account number
// is assigned by the repository, never by the caller.
type AccountCreate struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	BankID         uuid.UUID
	Type           string
	MinimumBalance decimal.Decimal
	InterestRate   decimal.Decimal
	Nominee        string
}

// AccountRead is the read-optimized projection of an account.
type AccountRead struct {
	ID                uuid.UUID       `json:"id"`
	Number            int64           `json:"number"`
	OwnerID           uuid.UUID       `json:"owner_id"`
	BankID            uuid.UUID       `json:"bank_id"`
	Type              string          `json:"type"`
	Balance           decimal.Decimal `json:"balance"`
	MinimumBalance    decimal.Decimal `json:"minimum_balance"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Nominee           string          `json:"nominee,omitempty"`
	Active            bool            `json:"active"`
	LastTransactionAt *time.Time      `json:"last_transaction_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
