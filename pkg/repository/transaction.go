package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
)

// TransactionRepository appends to and reads the immutable ledger.
// There is deliberately no update or delete operation.
type TransactionRepository interface {
	// Create appends one ledger entry. The entry's ID and reference number
	// must be unique; violations surface as typed failures.
	Create(ctx context.Context, txn *ledger.Transaction) error

	// Get returns one entry or a KindNotFound failure.
	Get(ctx context.Context, id string) (*dto.TransactionRead, error)

	// ListByAccount returns entries referencing the account as source or
	// destination, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) (*dto.TransactionPage, error)

	// ListByBank returns all entries of one tenant, newest first.
	ListByBank(ctx context.Context, bankID uuid.UUID, limit, offset int) (*dto.TransactionPage, error)
}
