// Package ledger defines the immutable transaction record and its identifiers.
package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/domain"
)

// TxnType enumerates ledger entry types.
type TxnType string

const (
	TypeDeposit    TxnType = "deposit"
	TypeWithdrawal TxnType = "withdrawal"
	TypeTransfer   TxnType = "transfer"
	TypeInterest   TxnType = "interest"
	TypePenalty    TxnType = "penalty"
)

// Status enumerates transaction lifecycle states. A completed transaction is
// immutable: no field may change after commit.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// MaxDescriptionLen bounds the free-text description.
const MaxDescriptionLen = 255

// MinAmount is the smallest transactable unit.
var MinAmount = decimal.NewFromFloat(0.01)

// Transaction is one ledger entry. Source is set for every type except deposit
// credits recorded against the destination; destination is set only for transfers.
// BalanceAfter snapshots the source account's balance post-operation.
type Transaction struct {
	ID              string
	BankID          uuid.UUID
	SourceID        *uuid.UUID
	DestinationID   *uuid.UUID
	Amount          decimal.Decimal
	Type            TxnType
	Description     string
	BalanceAfter    decimal.Decimal
	Status          Status
	ReferenceNumber *string
	ProcessedBy     uuid.UUID
	CreatedAt       time.Time
}

// NewID generates a globally unique transaction identifier: a UTC timestamp
// prefix for ordering plus a random suffix against collisions. It is assigned
// before persistence, never by the store.
func NewID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to nanos.
		return "TXN" + time.Now().UTC().Format("20060102150405.000000000")
	}
	return "TXN" + time.Now().UTC().Format("20060102150405") + strings.ToUpper(hex.EncodeToString(buf))
}

// ValidateAmount enforces positivity and the 0.01 minimum unit.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinAmount) {
		return domain.Ef(domain.KindValidation,
			"amount must be at least %s", MinAmount.StringFixed(2))
	}
	if amount.Exponent() < -2 {
		return domain.E(domain.KindValidation, "amount precision exceeds 0.01")
	}
	return nil
}

// ValidateDescription bounds the free-text description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLen {
		return domain.Ef(domain.KindValidation,
			"description exceeds %d characters", MaxDescriptionLen)
	}
	return nil
}
