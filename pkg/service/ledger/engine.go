// Package ledger implements the transaction engine: the one component that
// mutates account balances. Every operation runs as a single storage
// transaction; validation failures abort before any mutation, and any failure
// after that rolls the whole unit back.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/domain"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
	"github.com/sahakar/coopbank/pkg/service/audit"
)

// Service orchestrates banking operations end to end. It is stateless across
// calls; all mutable state lives behind the UnitOfWork. Balances are always
// read fresh inside the active transaction, never cached.
type Service struct {
	uow        repository.UnitOfWork
	audit      audit.Recorder
	policy     policy.Policy
	txnTimeout time.Duration
	logger     *slog.Logger
}

// New wires the engine with its collaborators. txnTimeout bounds every
// storage transaction; a deadline hit surfaces as a retryable
// concurrency conflict. The engine itself never retries.
func New(
	uow repository.UnitOfWork,
	auditSink audit.Recorder,
	pol policy.Policy,
	txnTimeout time.Duration,
	logger *slog.Logger,
) *Service {
	if txnTimeout <= 0 {
		txnTimeout = 5 * time.Second
	}
	return &Service{
		uow:        uow,
		audit:      auditSink,
		policy:     pol,
		txnTimeout: txnTimeout,
		logger:     logger,
	}
}

// Deposit credits an account and appends one completed ledger entry.
// On success the new balance equals the old balance plus the amount, exactly once.
func (s *Service) Deposit(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Deposit,
) (txn *ledgerdomain.Transaction, err error) {
	logger := s.logger.With(
		"operation", "deposit",
		"actor_id", actor.ID,
		"account_id", cmd.AccountID,
		"amount", cmd.Amount,
	)
	defer s.record(ctx, actor, "ledger.deposit", cmd.AccountID, &txn, &err)

	if err = validateMutation(cmd.Amount, cmd.Description); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, transactions, err := mutationRepos(uow)
		if err != nil {
			return err
		}
		acc, err := accounts.GetForUpdate(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanOperate(actor, acc.OwnerID, acc.BankID); err != nil {
			return err
		}
		if !acc.Active {
			return domain.E(domain.KindAccountInactive, "account is not active")
		}
		newBalance, err := accounts.MutateBalance(ctx, acc.ID, cmd.Amount, true)
		if err != nil {
			return err
		}
		entry := &ledgerdomain.Transaction{
			ID:              ledgerdomain.NewID(),
			BankID:          acc.BankID,
			SourceID:        &acc.ID,
			Amount:          cmd.Amount,
			Type:            ledgerdomain.TypeDeposit,
			Description:     cmd.Description,
			BalanceAfter:    newBalance,
			Status:          ledgerdomain.StatusCompleted,
			ReferenceNumber: cmd.ReferenceNumber,
			ProcessedBy:     actor.ID,
			CreatedAt:       time.Now().UTC(),
		}
		if err = transactions.Create(ctx, entry); err != nil {
			return err
		}
		txn = entry
		return nil
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("deposit completed", "transaction_id", txn.ID, "balance_after", txn.BalanceAfter)
	return txn, nil
}

// Withdraw debits an account subject to the available-balance pre-check
// (balance minus the minimum-balance floor) and appends one ledger entry.
// The failure message reports the available balance at decision time.
func (s *Service) Withdraw(
	ctx context.Context,
	actor policy.Actor,
	cmd commands.Withdraw,
) (txn *ledgerdomain.Transaction, err error) {
	logger := s.logger.With(
		"operation", "withdraw",
		"actor_id", actor.ID,
		"account_id", cmd.AccountID,
		"amount", cmd.Amount,
	)
	defer s.record(ctx, actor, "ledger.withdraw", cmd.AccountID, &txn, &err)

	if err = validateMutation(cmd.Amount, cmd.Description); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.txnTimeout)
	defer cancel()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, transactions, err := mutationRepos(uow)
		if err != nil {
			return err
		}
		acc, err := accounts.GetForUpdate(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err = s.policy.CanOperate(actor, acc.OwnerID, acc.BankID); err != nil {
			return err
		}
		if err = acc.CanDebit(cmd.Amount); err != nil {
			return err
		}
		newBalance, err := accounts.MutateBalance(ctx, acc.ID, cmd.Amount.Neg(), true)
		if err != nil {
			return err
		}
		entry := &ledgerdomain.Transaction{
			ID:           ledgerdomain.NewID(),
			BankID:       acc.BankID,
			SourceID:     &acc.ID,
			Amount:       cmd.Amount,
			Type:         ledgerdomain.TypeWithdrawal,
			Description:  cmd.Description,
			BalanceAfter: newBalance,
			Status:       ledgerdomain.StatusCompleted,
			ProcessedBy:  actor.ID,
			CreatedAt:    time.Now().UTC(),
		}
		if err = transactions.Create(ctx, entry); err != nil {
			return err
		}
		txn = entry
		return nil
	})
	if err != nil {
		logger.Error("withdrawal failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("withdrawal completed", "transaction_id", txn.ID, "balance_after", txn.BalanceAfter)
	return txn, nil
}

func validateMutation(amount decimal.Decimal, description string) error {
	if err := ledgerdomain.ValidateAmount(amount); err != nil {
		return err
	}
	return ledgerdomain.ValidateDescription(description)
}

// record emits the audit entry after an operation, success or failure.
// The sink is best-effort; nothing here can fail the banking operation.
func (s *Service) record(
	ctx context.Context,
	actor policy.Actor,
	action string,
	accountID uuid.UUID,
	txn **ledgerdomain.Transaction,
	opErr *error,
) {
	outcome := "completed"
	resourceID := accountID.String()
	details := ""
	if *opErr != nil {
		outcome = "failed"
		details = (*opErr).Error()
	} else if *txn != nil {
		resourceID = (*txn).ID
		details = fmt.Sprintf("amount=%s balance_after=%s",
			(*txn).Amount.StringFixed(2), (*txn).BalanceAfter.StringFixed(2))
	}
	s.audit.Record(ctx, dto.AuditRecord{
		ActorID:      actor.ID,
		BankID:       actor.BankID,
		Action:       action,
		ResourceType: "transaction",
		ResourceID:   resourceID,
		Details:      details,
		Outcome:      outcome,
	})
}

func mutationRepos(uow repository.UnitOfWork) (repository.AccountRepository, repository.TransactionRepository, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	transactions, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	return accounts, transactions, nil
}

// classify maps transaction-boundary failures onto the typed taxonomy.
// Already-typed failures pass through; context deadline hits become
// retryable concurrency conflicts; anything else is a storage failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var typed *domain.Error
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &typed) || errors.As(err, &insufficient) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Wrap(domain.KindConcurrencyConflict,
			"storage transaction aborted or timed out", err)
	}
	return domain.Wrap(domain.KindStorage, "unexpected storage failure", err)
}
