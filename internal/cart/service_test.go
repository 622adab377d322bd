package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/testutil"
	"gorm.io/gorm"
)

var (
	alice = access.Caller{Email: "a@x.com", Role: access.RoleCustomer}
	bob   = access.Caller{Email: "b@x.com", Role: access.RoleCustomer}
	admin = access.Caller{Email: "root@x.com", Role: access.RoleAdmin}
)

func qty(n int) *int {
	return &n
}

func newTestService(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t, account.RunSchemaMigration, catalog.RunSchemaMigration, RunSchemaMigration)
	log := testutil.Logger()
	ctx := context.Background()

	accounts := account.NewStorage(db)
	for _, c := range []access.Caller{alice, bob, admin} {
		require.NoError(t, accounts.CreateAccount(ctx, &account.Account{Email: c.Email, FullName: c.Email, PasswordHash: "-", Role: c.Role}))
	}

	products := catalog.NewService(catalog.NewStorage(db), log)
	_, err := products.CreateCategory(ctx, admin, catalog.CategoryInput{CateID: "C1", CateName: "Drinks"})
	require.NoError(t, err)
	for _, id := range []string{"P1", "P2"} {
		price := decimal.NewFromInt(10)
		_, err := products.CreateProduct(ctx, admin, catalog.ProductInput{ProductID: id, CateID: "C1", ProductName: "Tea " + id, Price: &price})
		require.NoError(t, err)
	}

	return NewService(NewStorage(db), products, accounts, log), db
}

func TestGetOrCreateCartIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateCart(ctx, alice, "")
	require.NoError(t, err)
	second, err := svc.GetOrCreateCart(ctx, alice, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, first.CartID, second.CartID)

	_, err = svc.GetOrCreateCart(ctx, bob, "a@x.com")
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))
}

func TestGetOrCreateCartRequiresAccount(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreateCart(ctx, admin, "ghost@x.com")
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	ghost := access.Caller{Email: "ghost@x.com", Role: access.RoleCustomer}
	_, err = svc.AddItem(ctx, ghost, AddItemInput{ProductID: "P1"})
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	var count int64
	require.NoError(t, db.Model(&Cart{}).Where("email = ?", "ghost@x.com").Count(&count).Error)
	assert.Zero(t, count)
}

func TestConcurrentGetOrCreateCartYieldsOneCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cart, err := svc.GetOrCreateCart(ctx, alice, "")
			if assert.NoError(t, err) {
				ids[i] = cart.CartID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	var count int64
	require.NoError(t, db.Model(&Cart{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItemSumsQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P1", Quantity: qty(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = svc.AddItem(ctx, alice, AddItemInput{CartID: item.CartID, ProductID: "P1", Quantity: qty(1)})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	item, err = svc.AddItem(ctx, alice, AddItemInput{CartID: item.CartID, ProductID: "P2"})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	lines, err := svc.ListItems(ctx, alice, item.CartID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "P1", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "Tea P1", lines[0].Product.ProductName)
}

func TestConcurrentAddItemLosesNoIncrement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	cart, err := svc.GetOrCreateCart(ctx, alice, "")
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, alice, AddItemInput{CartID: cart.CartID, ProductID: "P1", Quantity: qty(2)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := svc.ListItems(ctx, alice, cart.CartID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, workers*2, lines[0].Quantity)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, n := range []int{0, -3, catalog.MaxQuantity + 1} {
		_, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P1", Quantity: qty(n)})
		assert.True(t, apperror.IsKind(err, apperror.ValidationKind), "quantity %d", n)
	}

	_, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P404"})
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	_, err = svc.AddItem(ctx, alice, AddItemInput{CartID: "CART-missing", ProductID: "P1"})
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	cart, err := svc.GetOrCreateCart(ctx, bob, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, alice, AddItemInput{CartID: cart.CartID, ProductID: "P1"})
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))
}

func TestAddItemStopsAtMaxQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P1", Quantity: qty(catalog.MaxQuantity)})
	require.NoError(t, err)
	assert.Equal(t, catalog.MaxQuantity, item.Quantity)

	_, err = svc.AddItem(ctx, alice, AddItemInput{CartID: item.CartID, ProductID: "P1", Quantity: qty(1)})
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))

	lines, err := svc.ListItems(ctx, alice, item.CartID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, catalog.MaxQuantity, lines[0].Quantity)
}

func TestSetItemQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P1", Quantity: qty(2)})
	require.NoError(t, err)

	updated, err := svc.SetItemQuantity(ctx, alice, item.CartID, "P1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = svc.SetItemQuantity(ctx, alice, item.CartID, "P2", 1)
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))

	_, err = svc.SetItemQuantity(ctx, alice, item.CartID, "P1", catalog.MaxQuantity+1)
	assert.True(t, apperror.IsKind(err, apperror.ValidationKind))

	for _, n := range []int{0, -1} {
		_, err := svc.AddItem(ctx, alice, AddItemInput{CartID: item.CartID, ProductID: "P1"})
		require.NoError(t, err)

		removed, err := svc.SetItemQuantity(ctx, alice, item.CartID, "P1", n)
		require.NoError(t, err)
		assert.Nil(t, removed)

		lines, err := svc.ListItems(ctx, alice, item.CartID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	}

	err = svc.RemoveItem(ctx, alice, item.CartID, "P1")
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))
}

func TestDeleteCartCascadesItems(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	item, err := svc.AddItem(ctx, alice, AddItemInput{ProductID: "P1"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, alice, AddItemInput{ProductID: "P2"})
	require.NoError(t, err)

	assert.True(t, apperror.IsKind(svc.DeleteCart(ctx, bob, item.CartID), apperror.ForbiddenKind))
	require.NoError(t, svc.DeleteCart(ctx, alice, item.CartID))

	var count int64
	require.NoError(t, db.Model(&CartItem{}).Where("cart_id = ?", item.CartID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.GetCart(ctx, alice, item.CartID)
	assert.True(t, apperror.IsKind(err, apperror.NotFoundKind))
	assert.True(t, apperror.IsKind(svc.DeleteCart(ctx, alice, item.CartID), apperror.NotFoundKind))
}

func TestListCartsIsAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.GetOrCreateCart(ctx, alice, "")
	require.NoError(t, err)
	_, err = svc.GetOrCreateCart(ctx, bob, "")
	require.NoError(t, err)

	_, err = svc.ListCarts(ctx, alice)
	assert.True(t, apperror.IsKind(err, apperror.ForbiddenKind))

	carts, err := svc.ListCarts(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, carts, 2)

	cart, err := svc.GetCartByEmail(ctx, admin, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", cart.Email)
}
