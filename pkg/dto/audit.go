package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one append-only entry describing a state-changing operation,
// recorded regardless of outcome.
type AuditRecord struct {
	ID           uuid.UUID `json:"id"`
	ActorID      uuid.UUID `json:"actor_id"`
	BankID       uuid.UUID `json:"bank_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	Outcome      string    `json:"outcome"`
	CreatedAt    time.Time `json:"created_at"`
}
