// Package repository implements the unit-of-work and repositories on gorm.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/repository"

	accountrepo "github.com/sahakar/coopbank/infra/repository/account"
	auditrepo "github.com/sahakar/coopbank/infra/repository/audit"
	bankrepo "github.com/sahakar/coopbank/infra/repository/bank"
	kycrepo "github.com/sahakar/coopbank/infra/repository/kyc"
	transactionrepo "github.com/sahakar/coopbank/infra/repository/transaction"
	userrepo "github.com/sahakar/coopbank/infra/repository/user"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction session,
// which is what makes multi-record commits atomic; outside Do they run
// auto-committed on the base connection.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one gorm transaction. A returned error rolls everything
// back. Serialization failures, deadlocks and deadline hits surface as
// retryable concurrency conflicts.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
	return translateTxnError(err)
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns the account repository bound to the current session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return accountrepo.New(u.session()), nil
}

// TransactionRepository returns the ledger repository bound to the current session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transactionrepo.New(u.session()), nil
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return userrepo.New(u.session()), nil
}

// BankRepository returns the bank repository bound to the current session.
func (u *UoW) BankRepository() (repository.BankRepository, error) {
	return bankrepo.New(u.session()), nil
}

// KycRepository returns the KYC repository bound to the current session.
func (u *UoW) KycRepository() (repository.KycRepository, error) {
	return kycrepo.New(u.session()), nil
}

// AuditRepository returns the audit repository bound to the current session.
func (u *UoW) AuditRepository() (repository.AuditRepository, error) {
	return auditrepo.New(u.session()), nil
}

// translateTxnError keeps typed domain failures intact and maps storage-level
// aborts onto the taxonomy.
func translateTxnError(err error) error {
	if err == nil {
		return nil
	}
	var typed *domain.Error
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &typed) || errors.As(err, &insufficient) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Wrap(domain.KindConcurrencyConflict, "storage transaction timed out", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// serialization_failure, deadlock_detected, lock_not_available
		case "40001", "40P01", "55P03":
			return domain.Wrap(domain.KindConcurrencyConflict, "storage transaction aborted", err)
		}
	}
	return domain.Wrap(domain.KindStorage, "storage transaction failed", err)
}
