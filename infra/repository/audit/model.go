package audit

import (
	"time"

	"github.com/google/uuid"
)

// Record is one persisted audit entry. Append-only; no update path exists.
type Record struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	BankID       uuid.UUID `gorm:"type:uuid;index:idx_audit_bank_created,priority:1"`
	Action       string    `gorm:"type:varchar(64);not null"`
	ResourceType string    `gorm:"type:varchar(32);not null"`
	ResourceID   string    `gorm:"type:varchar(64)"`
	Details      string    `gorm:"type:varchar(1024)"`
	Outcome      string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"index:idx_audit_bank_created,priority:2,sort:desc"`
}

// TableName specifies the table name for the audit Record model.
func (Record) TableName() string {
	return "audit_records"
}
