package dto

import (
	"time"

	"github.com/google/uuid"
)

// BankCreate carries the fields for registering a cooperative bank tenant.
type BankCreate struct {
	ID      uuid.UUID
	Code    string
	Name    string
	Address string
}

// BankRead is the read-optimized projection of a bank.
type BankRead struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
