package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is the read-optimized projection of a ledger entry.
type TransactionRead struct {
	ID              string          `json:"id"`
	BankID          uuid.UUID       `json:"bank_id"`
	SourceID        *uuid.UUID      `json:"source_account_id,omitempty"`
	DestinationID   *uuid.UUID      `json:"destination_account_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Description     string          `json:"description,omitempty"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Status          string          `json:"status"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	ProcessedBy     uuid.UUID       `json:"processed_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionPage is a descending-time slice of an account's ledger.
type TransactionPage struct {
	Items  []TransactionRead `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int64             `json:"total"`
}
