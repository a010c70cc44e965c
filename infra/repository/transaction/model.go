package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the persisted ledger entry. Rows are append-only: the
// repository exposes no update or delete.
type Transaction struct {
	ID              string          `gorm:"type:varchar(32);primaryKey"`
	BankID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_bank_created,priority:1"`
	SourceID        *uuid.UUID      `gorm:"type:uuid;index:idx_transactions_source_created,priority:1"`
	DestinationID   *uuid.UUID      `gorm:"type:uuid;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Type            string          `gorm:"type:varchar(16);not null"`
	Description     string          `gorm:"type:varchar(255)"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status          string          `gorm:"type:varchar(16);not null"`
	ReferenceNumber *string         `gorm:"type:varchar(64);uniqueIndex"`
	ProcessedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt       time.Time       `gorm:"index:idx_transactions_bank_created,priority:2,sort:desc;index:idx_transactions_source_created,priority:2,sort:desc"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
