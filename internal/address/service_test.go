package address

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/testutil"
)

var (
	alice = access.Caller{Email: "a@x.com", Role: access.RoleCustomer}
	bob   = access.Caller{Email: "b@x.com", Role: access.RoleCustomer}
	admin = access.Caller{Email: "root@x.com", Role: access.RoleAdmin}
)

func newTestService(t *testing.T) AddressService {
	t.Helper()
	db := testutil.OpenDB(t, account.RunSchemaMigration, RunSchemaMigration)

	accounts := account.NewStorage(db)
	for _, c := range []access.Caller{alice, bob, admin} {
		require.NoError(t, accounts.CreateAccount(context.Background(), &account.Account{Email: c.Email, FullName: c.Email, PasswordHash: "-", Role: c.Role}))
	}
	return NewService(NewStorage(db), accounts, testutil.Logger())
}

func TestCreateAddressDefaultsToCaller(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addr, err := svc.CreateAddress(ctx, alice, AddressInput{Street: "1 Main", City: "Hanoi", Country: "VN"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", addr.Email)
	assert.NotEmpty(t, addr.AddressID)

	_, err = svc.CreateAddress(ctx, alice, AddressInput{Email: "b@x.com", Street: "1 Main", City: "Hanoi", Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	_, err = svc.CreateAddress(ctx, alice, AddressInput{AddressID: addr.AddressID, Street: "2 Main", City: "Hanoi", Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.ConflictKind))

	_, err = svc.CreateAddress(ctx, alice, AddressInput{Street: " ", City: "Hanoi", Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))
	assert.Contains(t, err.Error(), "street is required")

	_, err = svc.CreateAddress(ctx, alice, AddressInput{Street: "1 Main", City: strings.Repeat("x", 129), Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))
}

func TestCreateAddressRequiresAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAddress(ctx, admin, AddressInput{Email: "ghost@x.com", Street: "1 Main", City: "Hanoi", Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	ghost := access.Caller{Email: "ghost@x.com", Role: access.RoleCustomer}
	_, err = svc.CreateAddress(ctx, ghost, AddressInput{Street: "1 Main", City: "Hanoi", Country: "VN"})
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	list, err := svc.ListAddresses(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddressOwnership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	addr, err := svc.CreateAddress(ctx, alice, AddressInput{AddressID: "ADDR1", Street: "1 Main", City: "Hanoi", Country: "VN"})
	require.NoError(t, err)
	_, err = svc.CreateAddress(ctx, alice, AddressInput{AddressID: "ADDR2", Street: "2 Main", City: "Hue", Country: "VN"})
	require.NoError(t, err)

	_, err = svc.GetAddress(ctx, bob, addr.AddressID)
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	city := "Da Nang"
	_, err = svc.UpdateAddress(ctx, bob, addr.AddressID, AddressUpdate{City: &city})
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	updated, err := svc.UpdateAddress(ctx, alice, addr.AddressID, AddressUpdate{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Da Nang", updated.City)
	assert.Equal(t, "1 Main", updated.Street)

	blank := "  "
	_, err = svc.UpdateAddress(ctx, alice, addr.AddressID, AddressUpdate{Street: &blank})
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))

	mine, err := svc.ListAddresses(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.ListAddresses(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ListAddressesByEmail(ctx, bob, "a@x.com")
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	require.NoError(t, svc.DeleteAddress(ctx, admin, "ADDR2"))
	_, err = svc.GetAddress(ctx, alice, "ADDR2")
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))
}
