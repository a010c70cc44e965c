package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the persisted account record. The account number is unique
// within its bank; the pair forms the tenant-scoped secondary identity.
type Account struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number            int64           `gorm:"not null;uniqueIndex:idx_accounts_bank_number,priority:2"`
	BankID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_bank_number,priority:1"`
	OwnerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              string          `gorm:"type:varchar(32);not null"`
	Balance           decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	MinimumBalance    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	InterestRate      decimal.Decimal `gorm:"type:numeric(8,4);not null"`
	Nominee           string          `gorm:"type:varchar(255)"`
	Active            bool            `gorm:"not null;default:true"`
	LastTransactionAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
