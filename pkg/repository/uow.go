// Package repository defines the unit-of-work and repository contracts the
// services depend on. Implementations live under infra/repository.
package repository

import "context"

// UnitOfWork is the transaction boundary. Do runs fn inside one storage
// transaction: every repository obtained from the inner UnitOfWork shares the
// same session, so all reads are fresh and all writes commit together or not
// at all. If fn returns an error the transaction is rolled back.
//
// The repository accessors guarantee all repositories use the same session;
// fetching a repository outside Do operates auto-committed on the base
// connection and must never be used for balance mutations.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
	BankRepository() (BankRepository, error)
	KycRepository() (KycRepository, error)
	AuditRepository() (AuditRepository, error)
}
