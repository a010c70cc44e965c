package dto

import (
	"time"

	"github.com/google/uuid"
)

// KycCreate carries the metadata of a submitted document.
type KycCreate struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	BankID  uuid.UUID
	Type    string
	FileRef string
}

// KycReview carries a reviewer's decision.
type KycReview struct {
	Status     string
	ReviewNote string
	ReviewedBy uuid.UUID
}

// KycRead is the read-optimized projection of a document.
type KycRead struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	BankID     uuid.UUID  `json:"bank_id"`
	Type       string     `json:"type"`
	FileRef    string     `json:"file_ref"`
	Status     string     `json:"status"`
	ReviewNote string     `json:"review_note,omitempty"`
	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
