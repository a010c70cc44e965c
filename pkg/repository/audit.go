package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
)

// AuditRepository appends to the audit trail. Append-only by contract.
type AuditRepository interface {
	Create(ctx context.Context, record dto.AuditRecord) error
	ListByBank(ctx context.Context, bankID uuid.UUID, limit, offset int) ([]*dto.AuditRecord, error)
}
