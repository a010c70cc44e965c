package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
)

// KycRepository persists KYC document metadata.
type KycRepository interface {
	Create(ctx context.Context, create dto.KycCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.KycRead, error)
	Review(ctx context.Context, id uuid.UUID, review dto.KycReview) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.KycRead, error)
}
