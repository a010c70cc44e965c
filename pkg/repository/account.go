package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/dto"
)

// AccountRepository exposes account lookup and the single balance-mutation
// choke point. No other code path may write the balance column.
type AccountRepository interface {
	// Get returns the account or a KindNotFound failure.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetForUpdate reads the account under a row lock, serializing concurrent
	// balance mutations. Only meaningful inside a UnitOfWork transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// FindActiveByOwnerAndType returns the owner's active account of the given
	// type within a bank, or (nil, nil) when none exists.
	FindActiveByOwnerAndType(ctx context.Context, ownerID, bankID uuid.UUID, t account.Type) (*account.Account, error)

	// Create persists a new account, assigning the next sequential account
	// number scoped to the bank. Fails with KindDuplicateAccountType if the
	// owner already has an active account of the same type.
	Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error)

	// MutateBalance applies a signed delta atomically and returns the new
	// balance. Fails with KindAccountInactive when requireActive is set and
	// the account is deactivated, and with KindInsufficientBalance when a
	// debit would push the balance negative. Updates the last-transaction
	// timestamp as a side effect.
	MutateBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal, requireActive bool) (decimal.Decimal, error)

	// Deactivate soft-deletes the account. Fails with KindNonZeroBalance
	// unless the balance is exactly zero.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// UpdateNominee changes the nominee details, the only admin-editable field.
	UpdateNominee(ctx context.Context, id uuid.UUID, nominee string) error

	// ListByOwner returns all accounts of one owner, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error)
}
