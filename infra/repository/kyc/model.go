package kyc

import (
	"time"

	"github.com/google/uuid"
)

// Document is the persisted KYC document metadata record.
type Document struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	BankID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type       string     `gorm:"type:varchar(32);not null"`
	FileRef    string     `gorm:"type:varchar(512);not null"`
	Status     string     `gorm:"type:varchar(16);not null;default:'pending'"`
	ReviewNote string     `gorm:"type:varchar(512)"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Document model.
func (Document) TableName() string {
	return "kyc_documents"
}
