package account_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/internal/fixtures/memstore"
	"github.com/sahakar/coopbank/pkg/domain"
	accountdomain "github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	accountsvc "github.com/sahakar/coopbank/pkg/service/account"
	auditsvc "github.com/sahakar/coopbank/pkg/service/audit"
)

func newService(store *memstore.Store) *accountsvc.Service {
	logger := slog.Default()
	return accountsvc.New(store, auditsvc.New(store, policy.Policy{}, logger), policy.Policy{}, logger)
}

func seedBank(store *memstore.Store) uuid.UUID {
	id := uuid.New()
	store.SeedBank(dto.BankRead{ID: id, Code: "CB01", Name: "First Cooperative", Active: true})
	return id
}

func TestOpen_AssignsSequentialNumbersPerBank(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	first, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	second, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "current"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
	assert.True(t, first.Balance.IsZero())
	assert.True(t, first.Active)

	// Numbering is scoped per tenant.
	otherBank := seedBank(store)
	otherActor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: otherBank}
	third, err := svc.Open(context.Background(), otherActor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), third.Number)
}

func TestOpen_DuplicateTypeRejected(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	_, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	_, err = svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	assert.Equal(t, domain.KindDuplicateAccountType, domain.KindOf(err))
}

func TestOpen_DuplicateTypeAllowedAfterDeactivation(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	acc, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), actor, acc.ID))

	// The constraint binds active accounts only.
	_, err = svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	assert.NoError(t, err)
}

func TestOpen_UnknownType(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	_, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "checking"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestOpen_ForAnotherMemberRequiresStaff(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	member := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}
	other := uuid.New()

	_, err := svc.Open(context.Background(), member, accountsvc.OpenRequest{
		Type:    "savings",
		OwnerID: other,
	})
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))

	admin := policy.Actor{ID: uuid.New(), Role: user.RoleAdmin, BankID: bankID}
	acc, err := svc.Open(context.Background(), admin, accountsvc.OpenRequest{
		Type:    "savings",
		OwnerID: other,
	})
	require.NoError(t, err)
	assert.Equal(t, other, acc.OwnerID)
}

func TestDeactivate_NonZeroBalanceRefused(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	accID := uuid.New()
	store.SeedAccount(accountdomain.Account{
		ID:        accID,
		OwnerID:   actor.ID,
		BankID:    bankID,
		Type:      accountdomain.TypeSavings,
		Balance:   decimal.RequireFromString("0.01"),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	})

	err := svc.Deactivate(context.Background(), actor, accID)
	assert.Equal(t, domain.KindNonZeroBalance, domain.KindOf(err))

	acc, _ := store.Account(accID)
	assert.True(t, acc.Active)
}

func TestDeactivate_AccountStaysQueryable(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	acc, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), actor, acc.ID))

	got, err := svc.Get(context.Background(), actor, acc.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestUpdateNominee_StaffOnly(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	owner := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	acc, err := svc.Open(context.Background(), owner, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)

	// Even the owner may not edit the nominee directly.
	err = svc.UpdateNominee(context.Background(), owner, acc.ID, "spouse")
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))

	manager := policy.Actor{ID: uuid.New(), Role: user.RoleManager, BankID: bankID}
	require.NoError(t, svc.UpdateNominee(context.Background(), manager, acc.ID, "spouse"))

	got, err := svc.Get(context.Background(), owner, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "spouse", got.Nominee)
}

func TestListOwn_ReturnsOnlyCallersAccounts(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store)
	svc := newService(store)
	actor := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}
	other := policy.Actor{ID: uuid.New(), Role: user.RoleMember, BankID: bankID}

	_, err := svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)
	_, err = svc.Open(context.Background(), actor, accountsvc.OpenRequest{Type: "current"})
	require.NoError(t, err)
	_, err = svc.Open(context.Background(), other, accountsvc.OpenRequest{Type: "savings"})
	require.NoError(t, err)

	accs, err := svc.ListOwn(context.Background(), actor)
	require.NoError(t, err)
	assert.Len(t, accs, 2)
}
