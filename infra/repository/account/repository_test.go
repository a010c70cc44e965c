package account

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahakar/coopbank/pkg/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func accountRow(id uuid.UUID, balance string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "number", "bank_id", "owner_id", "type",
		"balance", "minimum_balance", "interest_rate", "nominee", "active",
	}).AddRow(id, 1, uuid.New(), uuid.New(), "savings", balance, "0", "0", "", active)
}

func TestRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(accountID, 1).
		WillReturnRows(accountRow(accountID, "150.00", true))

	acc, err := repo.Get(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID, acc.ID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("150.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	acc, err := repo.Get(context.Background(), uuid.New())
	assert.Nil(t, acc)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MutateBalanceInsufficient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(accountID, 1).
		WillReturnRows(accountRow(accountID, "100.00", true))

	_, err := repo.MutateBalance(context.Background(), accountID, decimal.RequireFromString("-200"), true)
	assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.RequireFromString("100.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MutateBalanceInactive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(accountID, 1).
		WillReturnRows(accountRow(accountID, "100.00", false))

	_, err := repo.MutateBalance(context.Background(), accountID, decimal.RequireFromString("50"), true)
	assert.Equal(t, domain.KindAccountInactive, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeactivateNonZeroBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository{db: db}
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(accountID, 1).
		WillReturnRows(accountRow(accountID, "0.01", true))

	err := repo.Deactivate(context.Background(), accountID)
	assert.Equal(t, domain.KindNonZeroBalance, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
