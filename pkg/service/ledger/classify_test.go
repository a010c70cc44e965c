package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/internal/fixtures/memstore"
	"github.com/sahakar/coopbank/internal/fixtures/mocks"
	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/policy"
	auditsvc "github.com/sahakar/coopbank/pkg/service/audit"
	ledgersvc "github.com/sahakar/coopbank/pkg/service/ledger"
)

func newMockedEngine(uow *mocks.UnitOfWork) *ledgersvc.Service {
	logger := slog.Default()
	// The audit sink runs on its own store so engine expectations stay clean.
	return ledgersvc.New(uow, auditsvc.New(memstore.New(), policy.Policy{}, logger), policy.Policy{}, time.Second, logger)
}

func TestDeposit_UnknownStorageErrorClassified(t *testing.T) {
	t.Parallel()
	uow := new(mocks.UnitOfWork)
	uow.On("Do", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	svc := newMockedEngine(uow)

	_, err := svc.Deposit(context.Background(), memberActor(uuid.New()), commands.Deposit{
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString("10"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
	assert.False(t, domain.IsRetryable(err))
}

func TestDeposit_DeadlineBecomesRetryableConflict(t *testing.T) {
	t.Parallel()
	uow := new(mocks.UnitOfWork)
	uow.On("Do", mock.Anything, mock.Anything).Return(context.DeadlineExceeded)
	svc := newMockedEngine(uow)

	_, err := svc.Deposit(context.Background(), memberActor(uuid.New()), commands.Deposit{
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString("10"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConcurrencyConflict, domain.KindOf(err))
	assert.True(t, domain.IsRetryable(err))
}

func TestDeposit_RepositoryAccessFailure(t *testing.T) {
	t.Parallel()
	uow := new(mocks.UnitOfWork)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil) // run the callback
	uow.On("AccountRepository").Return(nil, errors.New("session closed"))
	svc := newMockedEngine(uow)

	_, err := svc.Deposit(context.Background(), memberActor(uuid.New()), commands.Deposit{
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString("10"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}
