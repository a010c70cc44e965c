package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahakar/coopbank/internal/fixtures/memstore"
	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	authsvc "github.com/sahakar/coopbank/pkg/service/auth"
	"github.com/sahakar/coopbank/pkg/utils"
)

func jwtConfig() *config.Jwt {
	return &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
}

func seedUser(t *testing.T, store *memstore.Store, password string) dto.UserRead {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := dto.UserRead{
		ID:             uuid.New(),
		Username:       "asha",
		Email:          "asha@example.com",
		Role:           string(user.RoleMember),
		BankID:         uuid.New(),
		HashedPassword: hash,
	}
	store.SeedUser(u)
	return u
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	seeded := seedUser(t, store, "correct horse")
	svc := authsvc.New(store, jwtConfig(), slog.Default())

	byEmail, err := svc.Login(context.Background(), "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)

	byName, err := svc.Login(context.Background(), "asha", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byName.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	seedUser(t, store, "correct horse")
	svc := authsvc.New(store, jwtConfig(), slog.Default())

	_, err := svc.Login(context.Background(), "asha@example.com", "battery staple")
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
}

func TestLogin_UnknownIdentity(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	svc := authsvc.New(store, jwtConfig(), slog.Default())

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	seeded := seedUser(t, store, "correct horse")
	svc := authsvc.New(store, jwtConfig(), slog.Default())

	signed, err := svc.GenerateToken(&seeded)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(_ *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	actor, err := authsvc.ActorFromToken(parsed)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, actor.ID)
	assert.Equal(t, user.RoleMember, actor.Role)
	assert.Equal(t, seeded.BankID, actor.BankID)
}

func TestActorFromToken_RejectsBadClaims(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user id", jwt.MapClaims{"role": "member", "bank_id": uuid.New().String()}},
		{"garbage user id", jwt.MapClaims{"user_id": "not-a-uuid", "role": "member", "bank_id": uuid.New().String()}},
		{"unknown role", jwt.MapClaims{"user_id": uuid.New().String(), "role": "root", "bank_id": uuid.New().String()}},
		{"member without bank", jwt.MapClaims{"user_id": uuid.New().String(), "role": "member"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims)
			_, err := authsvc.ActorFromToken(token)
			assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
		})
	}
}

func TestActorFromToken_SuperAdminNeedsNoBank(t *testing.T) {
	t.Parallel()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    "super_admin",
	})
	actor, err := authsvc.ActorFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, actor.BankID)
}
