package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/policy"
	"github.com/sps/users-api/internal/core/ports"
	"github.com/sps/users-api/internal/infrastructure/credentials"
	"github.com/sps/users-api/internal/infrastructure/db/memory"
)

type fixture struct {
	store  *memory.UserStore
	tokens ports.TokenIssuer
	auth   *AuthService
	users  *UserService
	admin  *domain.Principal
}

func newFixture(t *testing.T, reg policy.Registration) *fixture {
	t.Helper()

	hasher := credentials.NewBcryptHasher(bcrypt.MinCost)
	store := memory.NewUserStore(hasher)
	require.NoError(t, store.Reset(context.Background(), true))

	tokens := credentials.NewJWTIssuer("test-secret", 0)
	log := zerolog.Nop()

	seed, err := store.FindByEmail(context.Background(), domain.SeedAdminEmail)
	require.NoError(t, err)
	admin := domain.PrincipalFor(seed)

	return &fixture{
		store:  store,
		tokens: tokens,
		auth:   NewAuthService(store, hasher, tokens, log),
		users:  NewUserService(store, reg, log),
		admin:  &admin,
	}
}

func (f *fixture) createUser(t *testing.T, name, email string) (*domain.User, *domain.Principal) {
	t.Helper()
	u, err := f.users.Create(context.Background(), ports.CreateUserInput{
		Name: name, Email: email, Role: domain.RoleUser, Password: "123456",
	})
	require.NoError(t, err)
	p := domain.PrincipalFor(u)
	return u, &p
}

func ptr[T any](v T) *T { return &v }
