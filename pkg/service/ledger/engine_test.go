package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/internal/fixtures/memstore"
	"github.com/sahakar/coopbank/pkg/commands"
	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/account"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	auditsvc "github.com/sahakar/coopbank/pkg/service/audit"
	ledgersvc "github.com/sahakar/coopbank/pkg/service/ledger"
)

func newEngine(store *memstore.Store, pol policy.Policy) *ledgersvc.Service {
	logger := slog.Default()
	return ledgersvc.New(store, auditsvc.New(store, policy.Policy{}, logger), pol, 5*time.Second, logger)
}

func seedAccount(store *memstore.Store, bankID, ownerID uuid.UUID, balance, minimum string) uuid.UUID {
	id := uuid.New()
	store.SeedAccount(account.Account{
		ID:             id,
		OwnerID:        ownerID,
		BankID:         bankID,
		Type:           account.TypeSavings,
		Balance:        decimal.RequireFromString(balance),
		MinimumBalance: decimal.RequireFromString(minimum),
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	})
	return id
}

func memberActor(bankID uuid.UUID) policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}
}

func TestDeposit_CreditsAndRecords(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	store.SeedBank(dto.BankRead{ID: bankID, Code: "CB01", Name: "First Cooperative", Active: true})
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "100", "0")
	svc := newEngine(store, policy.Policy{})

	txn, err := svc.Deposit(context.Background(), actor, commands.Deposit{
		AccountID:   accID,
		Amount:      decimal.RequireFromString("250.50"),
		Description: "salary",
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.TypeDeposit, txn.Type)
	assert.Equal(t, ledgerdomain.StatusCompleted, txn.Status)
	assert.True(t, txn.BalanceAfter.Equal(decimal.RequireFromString("350.50")))

	acc, ok := store.Account(accID)
	require.True(t, ok)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("350.50")))
	require.NotNil(t, acc.LastTransactionAt)

	records := store.AuditRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "ledger.deposit", records[0].Action)
	assert.Equal(t, "completed", records[0].Outcome)
}

func TestDeposit_InvalidAmount(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "100", "0")
	svc := newEngine(store, policy.Policy{})

	for _, amount := range []string{"0", "-10", "0.001"} {
		_, err := svc.Deposit(context.Background(), actor, commands.Deposit{
			AccountID: accID,
			Amount:    decimal.RequireFromString(amount),
		})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), amount)
	}
	// No mutation, no ledger entry.
	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("100")))
	assert.Empty(t, store.Transactions())
}

func TestWithdraw_AtMinimumBalanceFloor(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	// Balance 1000, floor 1000: available is zero.
	accID := seedAccount(store, bankID, actor.ID, "1000", "1000")
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Withdraw(context.Background(), actor, commands.Withdraw{
		AccountID: accID,
		Amount:    decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.IsZero())

	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestWithdraw_InactiveAccount(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := uuid.New()
	store.SeedAccount(account.Account{
		ID:        accID,
		OwnerID:   actor.ID,
		BankID:    bankID,
		Type:      account.TypeSavings,
		Balance:   decimal.RequireFromString("500"),
		Active:    false,
		CreatedAt: time.Now().UTC(),
	})
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Withdraw(context.Background(), actor, commands.Withdraw{
		AccountID: accID,
		Amount:    decimal.RequireFromString("10"),
	})
	assert.Equal(t, domain.KindAccountInactive, domain.KindOf(err))
}

func TestWithdraw_AccountNotFound(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	svc := newEngine(store, policy.Policy{})
	actor := memberActor(uuid.New())

	_, err := svc.Withdraw(context.Background(), actor, commands.Withdraw{
		AccountID: uuid.New(),
		Amount:    decimal.RequireFromString("10"),
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTransfer_MovesFundsAtomically(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	srcID := seedAccount(store, bankID, actor.ID, "5000", "0")
	dstID := seedAccount(store, bankID, uuid.New(), "500", "0")
	svc := newEngine(store, policy.Policy{})

	txn, err := svc.Transfer(context.Background(), actor, commands.Transfer{
		FromAccountID: srcID,
		ToAccountID:   dstID,
		Amount:        decimal.RequireFromString("2000"),
		Description:   "rent",
	})
	require.NoError(t, err)

	src, _ := store.Account(srcID)
	dst, _ := store.Account(dstID)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("3000")))
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("2500")))

	// Exactly one ledger entry referencing both accounts; BalanceAfter is the
	// source's post-debit balance.
	entries := store.Transactions()
	require.Len(t, entries, 1)
	assert.Equal(t, ledgerdomain.TypeTransfer, entries[0].Type)
	assert.Equal(t, srcID, *entries[0].SourceID)
	assert.Equal(t, dstID, *entries[0].DestinationID)
	assert.True(t, txn.BalanceAfter.Equal(decimal.RequireFromString("3000")))
}

func TestTransfer_SameAccount(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "1000", "0")
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Transfer(context.Background(), actor, commands.Transfer{
		FromAccountID: accID,
		ToAccountID:   accID,
		Amount:        decimal.RequireFromString("10"),
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestTransfer_InactiveDestination(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	srcID := seedAccount(store, bankID, actor.ID, "1000", "0")
	dstID := uuid.New()
	store.SeedAccount(account.Account{
		ID:        dstID,
		OwnerID:   uuid.New(),
		BankID:    bankID,
		Type:      account.TypeCurrent,
		Balance:   decimal.Zero,
		Active:    false,
		CreatedAt: time.Now().UTC(),
	})
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Transfer(context.Background(), actor, commands.Transfer{
		FromAccountID: srcID,
		ToAccountID:   dstID,
		Amount:        decimal.RequireFromString("10"),
	})
	assert.Equal(t, domain.KindAccountInactive, domain.KindOf(err))

	src, _ := store.Account(srcID)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestTransfer_CrossTenantRejectedBeforeMutation(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankA := uuid.New()
	bankB := uuid.New()
	actor := memberActor(bankA)
	srcID := seedAccount(store, bankA, actor.ID, "1000", "0")
	dstID := seedAccount(store, bankB, uuid.New(), "1000", "0")
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Transfer(context.Background(), actor, commands.Transfer{
		FromAccountID: srcID,
		ToAccountID:   dstID,
		Amount:        decimal.RequireFromString("100"),
	})
	assert.Equal(t, domain.KindCrossTenantAccessDenied, domain.KindOf(err))

	src, _ := store.Account(srcID)
	dst, _ := store.Account(dstID)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("1000")))
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("1000")))
	assert.Empty(t, store.Transactions())
}

func TestTransfer_CrossTenantSuperAdminToggle(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankA := uuid.New()
	bankB := uuid.New()
	superAdmin := policy.Actor{ID: uuid.New(), Role: user.RoleSuperAdmin}
	srcID := seedAccount(store, bankA, uuid.New(), "1000", "0")
	dstID := seedAccount(store, bankB, uuid.New(), "0", "0")

	// Disabled: rejected.
	svc := newEngine(store, policy.Policy{})
	_, err := svc.Transfer(context.Background(), superAdmin, commands.Transfer{
		FromAccountID: srcID,
		ToAccountID:   dstID,
		Amount:        decimal.RequireFromString("100"),
	})
	assert.Equal(t, domain.KindCrossTenantAccessDenied, domain.KindOf(err))

	// Enabled: permitted.
	svc = newEngine(store, policy.Policy{AllowCrossTenantTransfer: true})
	_, err = svc.Transfer(context.Background(), superAdmin, commands.Transfer{
		FromAccountID: srcID,
		ToAccountID:   dstID,
		Amount:        decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	dst, _ := store.Account(dstID)
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("100")))
}

func TestWithdraw_ConcurrentOverdraw(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "100", "0")
	svc := newEngine(store, policy.Policy{})

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Withdraw(context.Background(), actor, commands.Withdraw{
				AccountID: accID,
				Amount:    decimal.RequireFromString("100"),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one withdrawal may drain the account")

	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.IsZero())
	assert.Len(t, store.Transactions(), 1)
}

func TestTransfer_OppositeDirectionsNoDeadlock(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	ownerA := uuid.New()
	ownerB := uuid.New()
	accA := seedAccount(store, bankID, ownerA, "1000", "0")
	accB := seedAccount(store, bankID, ownerB, "1000", "0")
	svc := newEngine(store, policy.Policy{})

	actorA := policy.Actor{ID: ownerA, Role: user.RoleMember, BankID: bankID}
	actorB := policy.Actor{ID: ownerB, Role: user.RoleMember, BankID: bankID}

	const rounds = 20
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.Transfer(context.Background(), actorA, commands.Transfer{
				FromAccountID: accA,
				ToAccountID:   accB,
				Amount:        decimal.RequireFromString("10"),
			})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.Transfer(context.Background(), actorB, commands.Transfer{
				FromAccountID: accB,
				ToAccountID:   accA,
				Amount:        decimal.RequireFromString("10"),
			})
			assert.NoError(t, err)
		}
	}()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("transfers deadlocked")
	}

	// Equal opposing volumes: balances end where they started.
	a, _ := store.Account(accA)
	b, _ := store.Account(accB)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1000")))
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("1000")))
	assert.Len(t, store.Transactions(), 2*rounds)
}

func TestDeposit_DuplicateCallsAreDistinct(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "0", "0")
	svc := newEngine(store, policy.Policy{})

	cmd := commands.Deposit{
		AccountID:   accID,
		Amount:      decimal.RequireFromString("100"),
		Description: "same payload twice",
	}
	txn1, err := svc.Deposit(context.Background(), actor, cmd)
	require.NoError(t, err)
	txn2, err := svc.Deposit(context.Background(), actor, cmd)
	require.NoError(t, err)

	// No idempotency: two entries, two IDs, both applied.
	assert.NotEqual(t, txn1.ID, txn2.ID)
	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("200")))
	assert.Len(t, store.Transactions(), 2)
}

func TestDeposit_AuditFailureDoesNotBlock(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "0", "0")
	store.AuditCreateErr = errors.New("audit store down")
	svc := newEngine(store, policy.Policy{})

	txn, err := svc.Deposit(context.Background(), actor, commands.Deposit{
		AccountID: accID,
		Amount:    decimal.RequireFromString("50"),
	})
	require.NoError(t, err)
	assert.NotNil(t, txn)

	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("50")))
	assert.Empty(t, store.AuditRecords())
}

func TestDeposit_LedgerWriteFailureRollsBack(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	actor := memberActor(bankID)
	accID := seedAccount(store, bankID, actor.ID, "100", "0")
	store.TxnCreateErr = errors.New("ledger write refused")
	svc := newEngine(store, policy.Policy{})

	_, err := svc.Deposit(context.Background(), actor, commands.Deposit{
		AccountID: accID,
		Amount:    decimal.RequireFromString("50"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))

	// Balance credit rolled back with the failed ledger append.
	acc, _ := store.Account(accID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("100")))
	assert.Empty(t, store.Transactions())

	// Failure still audited.
	records := store.AuditRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "failed", records[0].Outcome)
}

func TestWithdraw_MemberCannotTouchOthersAccount(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := uuid.New()
	owner := uuid.New()
	accID := seedAccount(store, bankID, owner, "1000", "0")
	svc := newEngine(store, policy.Policy{})

	stranger := memberActor(bankID)
	_, err := svc.Withdraw(context.Background(), stranger, commands.Withdraw{
		AccountID: accID,
		Amount:    decimal.RequireFromString("10"),
	})
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))

	// Staff of the same bank may.
	admin := policy.Actor{ID: uuid.New(), Role: user.RoleAdmin, BankID: bankID}
	_, err = svc.Withdraw(context.Background(), admin, commands.Withdraw{
		AccountID: accID,
		Amount:    decimal.RequireFromString("10"),
	})
	assert.NoError(t, err)
}
