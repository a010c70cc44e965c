// Package kyc tracks submitted KYC documents through review. File content is
// handled by the upload pipeline; only metadata lives here.
package kyc

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
	kycdomain "github.com/sahakar/coopbank/pkg/domain/kyc"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
	"github.com/sahakar/coopbank/pkg/service/audit"
)

// Service handles document submission and review.
type Service struct {
	uow    repository.UnitOfWork
	audit  audit.Recorder
	policy policy.Policy
	logger *slog.Logger
}

// New creates the KYC service.
func New(uow repository.UnitOfWork, auditSink audit.Recorder, pol policy.Policy, logger *slog.Logger) *Service {
	return &Service{uow: uow, audit: auditSink, policy: pol, logger: logger}
}

// Submit records a document pending review for the actor.
func (s *Service) Submit(
	ctx context.Context,
	actor policy.Actor,
	docType, fileRef string,
) (doc *kycdomain.Document, err error) {
	doc, err = kycdomain.New(actor.ID, actor.BankID, kycdomain.DocType(docType), fileRef)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		docs, err := uow.KycRepository()
		if err != nil {
			return err
		}
		return docs.Create(ctx, dto.KycCreate{
			ID:      doc.ID,
			OwnerID: doc.OwnerID,
			BankID:  doc.BankID,
			Type:    string(doc.Type),
			FileRef: doc.FileRef,
		})
	})
	if err != nil {
		s.logger.Error("kyc submission failed", "owner_id", actor.ID, "error", err)
		return nil, err
	}
	s.audit.Record(ctx, dto.AuditRecord{
		ActorID:      actor.ID,
		BankID:       actor.BankID,
		Action:       "kyc.submit",
		ResourceType: "kyc_document",
		ResourceID:   doc.ID.String(),
		Outcome:      "completed",
	})
	return doc, nil
}

// Review verifies or rejects a document. Staff of the document's bank only.
func (s *Service) Review(
	ctx context.Context,
	actor policy.Actor,
	docID uuid.UUID,
	status, note string,
) (err error) {
	switch kycdomain.Status(status) {
	case kycdomain.StatusVerified, kycdomain.StatusRejected:
	default:
		return domain.Ef(domain.KindValidation, "review status must be verified or rejected, got %q", status)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		docs, err := uow.KycRepository()
		if err != nil {
			return err
		}
		doc, err := docs.Get(ctx, docID)
		if err != nil {
			return err
		}
		if err = s.policy.CanReview(actor, doc.BankID); err != nil {
			return err
		}
		return docs.Review(ctx, docID, dto.KycReview{
			Status:     status,
			ReviewNote: note,
			ReviewedBy: actor.ID,
		})
	})
	outcome := "completed"
	if err != nil {
		outcome = "failed"
		s.logger.Error("kyc review failed", "doc_id", docID, "error", err)
	}
	s.audit.Record(ctx, dto.AuditRecord{
		ActorID:      actor.ID,
		BankID:       actor.BankID,
		Action:       "kyc.review",
		ResourceType: "kyc_document",
		ResourceID:   docID.String(),
		Details:      "status=" + status,
		Outcome:      outcome,
	})
	return err
}

// ListOwn returns the actor's submitted documents.
func (s *Service) ListOwn(ctx context.Context, actor policy.Actor) (items []*dto.KycRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		docs, err := uow.KycRepository()
		if err != nil {
			return err
		}
		items, err = docs.ListByOwner(ctx, actor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
