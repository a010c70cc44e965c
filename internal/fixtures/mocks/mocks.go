// Package mocks provides hand-rolled testify mocks for the repository
// contracts. The in-memory store under fixtures/memstore covers the happy
// paths; these mocks exist for failure injection at the repository boundary.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/repository"
)

// UnitOfWork is a mock repository.UnitOfWork. By default Do runs the
// callback against the mock itself so repository expectations apply inside
// the transaction.
type UnitOfWork struct {
	mock.Mock
}

func (m *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) == nil {
		return fn(m)
	}
	return args.Error(0)
}

func (m *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TransactionRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) UserRepository() (repository.UserRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.UserRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) BankRepository() (repository.BankRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.BankRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) KycRepository() (repository.KycRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.KycRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) AuditRepository() (repository.AuditRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AuditRepository)
	return repo, args.Error(1)
}

// AccountRepository is a mock repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *AccountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *AccountRepository) FindActiveByOwnerAndType(
	ctx context.Context,
	ownerID, bankID uuid.UUID,
	t account.Type,
) (*account.Account, error) {
	args := m.Called(ctx, ownerID, bankID, t)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error) {
	args := m.Called(ctx, create)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *AccountRepository) MutateBalance(
	ctx context.Context,
	id uuid.UUID,
	delta decimal.Decimal,
	requireActive bool,
) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta, requireActive)
	bal, _ := args.Get(0).(decimal.Decimal)
	return bal, args.Error(1)
}

func (m *AccountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AccountRepository) UpdateNominee(ctx context.Context, id uuid.UUID, nominee string) error {
	return m.Called(ctx, id, nominee).Error(0)
}

func (m *AccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID)
	accs, _ := args.Get(0).([]*account.Account)
	return accs, args.Error(1)
}

// TransactionRepository is a mock repository.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, txn *ledger.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *TransactionRepository) Get(ctx context.Context, id string) (*dto.TransactionRead, error) {
	args := m.Called(ctx, id)
	read, _ := args.Get(0).(*dto.TransactionRead)
	return read, args.Error(1)
}

func (m *TransactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	args := m.Called(ctx, accountID, limit, offset)
	page, _ := args.Get(0).(*dto.TransactionPage)
	return page, args.Error(1)
}

func (m *TransactionRepository) ListByBank(
	ctx context.Context,
	bankID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	args := m.Called(ctx, bankID, limit, offset)
	page, _ := args.Get(0).(*dto.TransactionPage)
	return page, args.Error(1)
}
