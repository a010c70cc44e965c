// Package account provides account lifecycle operations: opening,
// deactivation and nominee updates. Balance mutations belong to the
// transaction engine, never to this service.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/domain"
	accountdomain "github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
	"github.com/sahakar/coopbank/pkg/service/audit"
)

// Service handles account lifecycle.
type Service struct {
	uow    repository.UnitOfWork
	audit  audit.Recorder
	policy policy.Policy
	logger *slog.Logger
}

// New creates the account service.
func New(uow repository.UnitOfWork, auditSink audit.Recorder, pol policy.Policy, logger *slog.Logger) *Service {
	return &Service{uow: uow, audit: auditSink, policy: pol, logger: logger}
}

// OpenRequest carries the fields for opening an account.
type OpenRequest struct {
	OwnerID        uuid.UUID
	Type           string
	MinimumBalance decimal.Decimal
	InterestRate   decimal.Decimal
	Nominee        string
}

// Open creates an account for the owner within the actor's bank. One active
// account per type per owner; the account number is assigned sequentially
// within the tenant at creation.
func (s *Service) Open(
	ctx context.Context,
	actor policy.Actor,
	req OpenRequest,
) (acc *accountdomain.Account, err error) {
	defer s.recordOutcome(ctx, actor, "account.open", &acc, &err)

	accountType, err := accountdomain.ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	if req.MinimumBalance.IsNegative() {
		return nil, domain.E(domain.KindValidation, "minimum balance cannot be negative")
	}
	if req.InterestRate.IsNegative() {
		return nil, domain.E(domain.KindValidation, "interest rate cannot be negative")
	}
	ownerID := req.OwnerID
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if ownerID != actor.ID {
		// Opening on behalf of someone else is a staff action.
		if err = s.policy.CanReview(actor, actor.BankID); err != nil {
			return nil, err
		}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = accounts.Create(ctx, dto.AccountCreate{
			ID:             uuid.New(),
			OwnerID:        ownerID,
			BankID:         actor.BankID,
			Type:           string(accountType),
			MinimumBalance: req.MinimumBalance,
			InterestRate:   req.InterestRate,
			Nominee:        req.Nominee,
		})
		return err
	})
	if err != nil {
		s.logger.Error("account open failed", "owner_id", ownerID, "type", accountType, "error", err)
		return nil, err
	}
	s.logger.Info("account opened",
		"account_id", acc.ID, "number", acc.Number, "owner_id", ownerID, "type", accountType)
	return acc, nil
}

// Deactivate soft-deletes an account. Allowed only when the balance is
// exactly zero; the account and its ledger stay queryable afterwards.
func (s *Service) Deactivate(
	ctx context.Context,
	actor policy.Actor,
	accountID uuid.UUID,
) (err error) {
	defer func() {
		outcome := "completed"
		if err != nil {
			outcome = "failed"
		}
		s.audit.Record(ctx, dto.AuditRecord{
			ActorID:      actor.ID,
			BankID:       actor.BankID,
			Action:       "account.deactivate",
			ResourceType: "account",
			ResourceID:   accountID.String(),
			Outcome:      outcome,
		})
	}()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanOperate(actor, acc.OwnerID, acc.BankID); err != nil {
			return err
		}
		if err = acc.CanDeactivate(); err != nil {
			return err
		}
		return accounts.Deactivate(ctx, accountID)
	})
	if err != nil {
		s.logger.Error("account deactivation failed", "account_id", accountID, "error", err)
		return err
	}
	s.logger.Info("account deactivated", "account_id", accountID)
	return nil
}

// UpdateNominee changes the nominee details. Staff of the account's bank only.
func (s *Service) UpdateNominee(
	ctx context.Context,
	actor policy.Actor,
	accountID uuid.UUID,
	nominee string,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanReview(actor, acc.BankID); err != nil {
			return err
		}
		return accounts.UpdateNominee(ctx, accountID, nominee)
	})
	if err != nil {
		s.logger.Error("nominee update failed", "account_id", accountID, "error", err)
		return err
	}
	s.logger.Info("nominee updated", "account_id", accountID)
	return nil
}

// Get returns one account after an access check.
func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	accountID uuid.UUID,
) (acc *accountdomain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		return s.policy.CanOperate(actor, acc.OwnerID, acc.BankID)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// ListOwn returns the actor's accounts, newest first.
func (s *Service) ListOwn(
	ctx context.Context,
	actor policy.Actor,
) (accs []*accountdomain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accs, err = accounts.ListByOwner(ctx, actor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accs, nil
}

func (s *Service) recordOutcome(
	ctx context.Context,
	actor policy.Actor,
	action string,
	acc **accountdomain.Account,
	opErr *error,
) {
	outcome := "completed"
	resourceID := ""
	if *opErr != nil {
		outcome = "failed"
	} else if *acc != nil {
		resourceID = (*acc).ID.String()
	}
	s.audit.Record(ctx, dto.AuditRecord{
		ActorID:      actor.ID,
		BankID:       actor.BankID,
		Action:       action,
		ResourceType: "account",
		ResourceID:   resourceID,
		Outcome:      outcome,
	})
}
