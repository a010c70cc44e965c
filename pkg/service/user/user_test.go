package user_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/internal/fixtures/memstore"
	"github.com/sahakar/coopbank/pkg/domain"
	userdomain "github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	usersvc "github.com/sahakar/coopbank/pkg/service/user"
	"github.com/sahakar/coopbank/pkg/utils"
)

func seedBank(store *memstore.Store, active bool) uuid.UUID {
	id := uuid.New()
	store.SeedBank(dto.BankRead{ID: id, Code: "CB01", Name: "First Cooperative", Active: active})
	return id
}

func TestRegister_CreatesMember(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store, true)
	svc := usersvc.New(store, slog.Default())

	u, err := svc.Register(context.Background(), "asha", "asha@example.com", "correct horse", bankID)
	require.NoError(t, err)
	assert.Equal(t, userdomain.RoleMember, u.Role)
	assert.Equal(t, bankID, u.BankID)
	assert.NotEqual(t, "correct horse", u.HashedPassword)
	assert.True(t, utils.CheckPasswordHash("correct horse", u.HashedPassword))

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", got.Username)
}

func TestRegister_UnknownBank(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	svc := usersvc.New(store, slog.Default())

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "correct horse", uuid.New())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRegister_InactiveBank(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store, false)
	svc := usersvc.New(store, slog.Default())

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "correct horse", bankID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	bankID := seedBank(store, true)
	svc := usersvc.New(store, slog.Default())

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "correct horse", bankID)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "someone", "asha@example.com", "correct horse", bankID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Register(context.Background(), "asha", "other@example.com", "correct horse", bankID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestGet_UnknownUser(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	svc := usersvc.New(store, slog.Default())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
