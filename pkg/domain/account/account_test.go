package account_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/account"
)

func buildAccount(t *testing.T, balance, minimum string, active bool) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithOwner(uuid.New()).
		WithBank(uuid.New()).
		WithBalance(decimal.RequireFromString(balance)).
		WithMinimumBalance(decimal.RequireFromString(minimum)).
		WithActive(active).
		Build()
	require.NoError(t, err)
	return acc
}

func TestAvailable_ClampsAtZero(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "500", "1000", true)
	assert.True(t, acc.Available().IsZero())
}

func TestAvailable_BalanceMinusFloor(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "1500", "1000", true)
	assert.True(t, acc.Available().Equal(decimal.RequireFromString("500")))
}

func TestCanDebit_AtFloor(t *testing.T) {
	t.Parallel()
	// Balance exactly at the floor leaves nothing available.
	acc := buildAccount(t, "1000", "1000", true)
	err := acc.CanDebit(decimal.RequireFromString("1"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.IsZero())
}

func TestCanDebit_ReportsAvailable(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "1200", "1000", true)
	err := acc.CanDebit(decimal.RequireFromString("300"))
	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.RequireFromString("200")))
}

func TestCanDebit_ExactlyAvailable(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "1200", "1000", true)
	assert.NoError(t, acc.CanDebit(decimal.RequireFromString("200")))
}

func TestCanDebit_Inactive(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "5000", "0", false)
	err := acc.CanDebit(decimal.RequireFromString("10"))
	assert.Equal(t, domain.KindAccountInactive, domain.KindOf(err))
}

func TestCanDeactivate_NonZeroBalance(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "0.01", "0", true)
	err := acc.CanDeactivate()
	assert.Equal(t, domain.KindNonZeroBalance, domain.KindOf(err))
}

func TestCanDeactivate_ZeroBalance(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, "0", "0", true)
	assert.NoError(t, acc.CanDeactivate())
}

func TestParseType(t *testing.T) {
	t.Parallel()
	for _, valid := range []string{"savings", "current", "fixed_deposit", "recurring_deposit"} {
		_, err := account.ParseType(valid)
		assert.NoError(t, err, valid)
	}
	_, err := account.ParseType("checking")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestBuild_RequiresOwnerAndBank(t *testing.T) {
	t.Parallel()
	_, err := account.New().WithBank(uuid.New()).Build()
	require.Error(t, err)

	_, err = account.New().WithOwner(uuid.New()).Build()
	require.Error(t, err)
}

func TestBuild_RejectsNegativeBalance(t *testing.T) {
	t.Parallel()
	_, err := account.New().
		WithOwner(uuid.New()).
		WithBank(uuid.New()).
		WithBalance(decimal.RequireFromString("-1")).
		Build()
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
