package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
)

// BankRepository persists cooperative bank tenants.
type BankRepository interface {
	Create(ctx context.Context, create dto.BankCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BankRead, error)
	GetByCode(ctx context.Context, code string) (*dto.BankRead, error)
	List(ctx context.Context) ([]*dto.BankRead, error)
}
