package bank

import (
	"time"

	"github.com/google/uuid"
)

// Bank is the persisted cooperative bank tenant. Account creation takes a row
// lock on this table to serialize per-tenant account numbering.
type Bank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:varchar(512)"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Bank model.
func (Bank) TableName() string {
	return "cooperative_banks"
}
