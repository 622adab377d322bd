package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/address"
	"github.com/voduybaokhanh/shop-service/internal/cart"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/order"
	"github.com/voduybaokhanh/shop-service/internal/payment"
	"github.com/voduybaokhanh/shop-service/internal/testutil"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
	"github.com/voduybaokhanh/shop-service/pkg/metrics"
)

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func newTestApp(t *testing.T) (*gin.Engine, *Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t,
		account.RunSchemaMigration,
		catalog.RunSchemaMigration,
		address.RunSchemaMigration,
		payment.RunSchemaMigration,
		cart.RunSchemaMigration,
		order.RunSchemaMigration,
	)
	tokens, err := jwtutil.New(jwtutil.Config{SigningKey: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	m := metrics.NewHTTPMetrics("shop-service-test")

	services := NewServices(db, tokens, m, "panic")
	router := NewRouter(services, tokens, m, Options{LogLevel: "panic", AllowedOrigins: []string{"*"}})
	return router, services
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestCartToOrderOverHTTP(t *testing.T) {
	router, services := newTestApp(t)
	require.NoError(t, services.Accounts.EnsureAdmin(context.Background(), "root@x.com", "Root", "rootpass"))
	admin := &client{t: t, router: router}
	var adminLogin account.LoginResult
	require.Equal(t, http.StatusOK, admin.do(http.MethodPost, "/api/accounts/login", account.LoginInput{Email: "root@x.com", Password: "rootpass"}, &adminLogin))
	admin.token = adminLogin.Token

	require.Equal(t, http.StatusCreated, admin.do(http.MethodPost, "/api/categories", catalog.CategoryInput{CateID: "C1", CateName: "Drinks"}, nil))
	price := decimal.NewFromInt(10)
	require.Equal(t, http.StatusCreated, admin.do(http.MethodPost, "/api/products", catalog.ProductInput{ProductID: "P1", CateID: "C1", ProductName: "Tea", Price: &price}, nil))
	require.Equal(t, http.StatusCreated, admin.do(http.MethodPost, "/api/payment-methods", payment.PaymentMethodInput{PaymentMethodID: "PM1", MethodName: "Voucher"}, nil))

	assert.Equal(t, http.StatusNotFound, admin.do(http.MethodPost, "/api/addresses", address.AddressInput{Email: "ghost@x.com", Street: "1 Main", City: "Hanoi", Country: "VN"}, nil))

	alice := &client{t: t, router: router}
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/accounts/register", account.RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"}, nil))
	require.Equal(t, http.StatusConflict, alice.do(http.MethodPost, "/api/accounts/register", account.RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"}, nil))

	var login account.LoginResult
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/accounts/login", account.LoginInput{Email: "a@x.com", Password: "secret1"}, &login))
	alice.token = login.Token

	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/addresses", address.AddressInput{AddressID: "ADDR1", Street: "1 Main", City: "Hanoi", Country: "VN"}, nil))

	var c cart.Cart
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/carts", nil, &c))

	two, one := 2, 1
	var item cart.CartItem
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/carts/items", cart.AddItemInput{CartID: c.CartID, ProductID: "P1", Quantity: &two}, &item))
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/carts/items", cart.AddItemInput{CartID: c.CartID, ProductID: "P1", Quantity: &one}, &item))
	assert.Equal(t, 3, item.Quantity)

	zero, tooMany := 0, catalog.MaxQuantity
	assert.Equal(t, http.StatusBadRequest, alice.do(http.MethodPost, "/api/carts/items", cart.AddItemInput{CartID: c.CartID, ProductID: "P1", Quantity: &zero}, nil))
	assert.Equal(t, http.StatusBadRequest, alice.do(http.MethodPost, "/api/carts/items", cart.AddItemInput{CartID: c.CartID, ProductID: "P1", Quantity: &tooMany}, nil))

	var placed order.Order
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/orders", order.CheckoutInput{AddressID: "ADDR1", PaymentMethodID: "PM1"}, &placed))
	assert.Equal(t, order.StatusPending, placed.Status)

	var items []order.OrderItem
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/orders/"+placed.OrderID+"/items", nil, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(10)))

	var lines []cart.CartLine
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/carts/"+c.CartID+"/items", nil, &lines))
	assert.Empty(t, lines)

	assert.Equal(t, http.StatusForbidden, alice.do(http.MethodPut, "/api/orders/"+placed.OrderID, order.StatusInput{Status: order.StatusProcessing}, nil))
	assert.Equal(t, http.StatusOK, admin.do(http.MethodPut, "/api/orders/"+placed.OrderID, order.StatusInput{Status: order.StatusProcessing}, nil))

	var all []order.Order
	assert.Equal(t, http.StatusForbidden, alice.do(http.MethodGet, "/api/orders?all=true", nil, nil))
	require.Equal(t, http.StatusOK, admin.do(http.MethodGet, "/api/orders?all=true", nil, &all))
	assert.Len(t, all, 1)

	anonymous := &client{t: t, router: router}
	assert.Equal(t, http.StatusUnauthorized, anonymous.do(http.MethodGet, "/api/orders", nil, nil))
	assert.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, "/api/products", nil, nil))
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", strings.NewReader("")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
