package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/testutil"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*accountService, *jwtutil.JWTUtil) {
	t.Helper()

	db := testutil.OpenDB(t, RunSchemaMigration)
	tokens, err := jwtutil.New(jwtutil.Config{SigningKey: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	svc := NewService(NewStorage(db), tokens, testutil.Logger()).(*accountService)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	acc, err := svc.Register(ctx, RegisterInput{Email: " A@X.com ", FullName: "Alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.Equal(t, access.RoleCustomer, acc.Role)

	stored, err := svc.storage.GetAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmailIsConflictAndKeepsRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"})
	require.NoError(t, err)
	before, err := svc.storage.GetAccount(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "Mallory", Password: "other-pass"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.ConflictKind))

	after, err := svc.storage.GetAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", after.FullName)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "not-an-email", FullName: "A", Password: "secret1"},
		{Email: "b@x.com", FullName: "  ", Password: "secret1"},
		{Email: "b@x.com", FullName: "B", Password: "123"},
	}
	for _, input := range cases {
		_, err := svc.Register(ctx, input)
		assert.True(t, apperror.IsKind(err, apperror.ValidationKind), "input %+v", input)
	}
}

func TestLoginIssuesTokenWithEmailAndRole(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, access.RoleCustomer, claims.Role)

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong-pass"})
	assert.True(t, apperror.IsKind(err, apperror.AuthKind))

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "secret1"})
	assert.True(t, apperror.IsKind(err, apperror.AuthKind))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	caller := access.Caller{Email: "a@x.com", Role: access.RoleCustomer}

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, caller, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))

	require.NoError(t, svc.ChangePassword(ctx, caller, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "secret2"}))

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestAccountAccessIsOwnerOrAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"})
	require.NoError(t, err)

	other := access.Caller{Email: "b@x.com", Role: access.RoleCustomer}
	name := "Hacked"
	_, err = svc.UpdateAccount(ctx, other, "a@x.com", UpdateInput{FullName: &name})
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))
	assert.True(t, apperror.IsKind(svc.DeleteAccount(ctx, other, "a@x.com"), apperror.ForbiddenKind))

	_, err = svc.ListAccounts(ctx, other)
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	owner := access.Caller{Email: "a@x.com", Role: access.RoleCustomer}
	role := access.RoleAdmin
	_, err = svc.UpdateAccount(ctx, owner, "a@x.com", UpdateInput{Role: &role})
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind), "customers can not promote themselves")

	name = "Alice B"
	acc, err := svc.UpdateAccount(ctx, owner, "a@x.com", UpdateInput{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", acc.FullName)

	admin := access.Caller{Email: "root@x.com", Role: access.RoleAdmin}
	accounts, err := svc.ListAccounts(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	require.NoError(t, svc.DeleteAccount(ctx, admin, "a@x.com"))
	_, err = svc.GetAccount(ctx, admin, "a@x.com")
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root@x.com", "Root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@x.com", "Root", "rootpass"))

	acc, err := svc.storage.GetAccount(ctx, "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, acc.Role)
}
