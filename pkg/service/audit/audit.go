// Package audit implements the append-only audit sink. Recording is
// best-effort: a failed write is logged and discarded, never surfaced to the
// banking operation that triggered it.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
)

// Recorder is the fire-and-forget contract consumed by the transaction engine.
type Recorder interface {
	Record(ctx context.Context, record dto.AuditRecord)
}

// Service persists audit records in their own short-lived transaction so a
// rolled-back banking operation still leaves its audit trail.
type Service struct {
	uow    repository.UnitOfWork
	policy policy.Policy
	logger *slog.Logger
}

// New creates the audit sink.
func New(uow repository.UnitOfWork, pol policy.Policy, logger *slog.Logger) *Service {
	return &Service{uow: uow, policy: pol, logger: logger}
}

// Record appends one entry. The incoming context's cancellation is detached:
// an operation that timed out still gets audited.
func (s *Service) Record(ctx context.Context, record dto.AuditRecord) {
	record.ID = uuid.New()
	record.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AuditRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, record)
	})
	if err != nil {
		s.logger.Error("audit record dropped",
			"action", record.Action,
			"resource_type", record.ResourceType,
			"resource_id", record.ResourceID,
			"error", err,
		)
	}
}

const defaultPageSize = 50

// Trail returns one tenant's audit records, newest first. Staff of the bank
// or super_admin only.
func (s *Service) Trail(
	ctx context.Context,
	actor policy.Actor,
	bankID uuid.UUID,
	limit, offset int,
) (records []*dto.AuditRecord, err error) {
	if err = s.policy.CanReview(actor, bankID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AuditRepository()
		if err != nil {
			return err
		}
		records, err = repo.ListByBank(ctx, bankID, limit, offset)
		return err
	})
	if err != nil {
		s.logger.Error("audit trail query failed", "bank_id", bankID, "error", err)
		return nil, err
	}
	return records, nil
}
