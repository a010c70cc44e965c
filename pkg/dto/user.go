package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate carries the fields for registering a user.
type UserCreate struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	Role           string
	BankID         uuid.UUID
}

// UserRead is the read-optimized projection of a user. HashedPassword is
// populated only for authentication flows and never serialized.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	BankID         uuid.UUID `json:"bank_id"`
	CreatedAt      time.Time `json:"created_at"`
	HashedPassword string    `json:"-"`
}
