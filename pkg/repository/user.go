package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
)

// UserRepository persists registered users.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)
}
