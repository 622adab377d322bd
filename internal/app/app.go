// Package app wires storages, services and handlers into one gin engine.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/address"
	"github.com/voduybaokhanh/shop-service/internal/cart"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/middleware"
	"github.com/voduybaokhanh/shop-service/internal/order"
	"github.com/voduybaokhanh/shop-service/internal/payment"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
	"github.com/voduybaokhanh/shop-service/pkg/logger"
	"github.com/voduybaokhanh/shop-service/pkg/metrics"
	"gorm.io/gorm"
)

type Options struct {
	LogLevel       string
	AllowedOrigins []string
}

type Services struct {
	Accounts       account.AccountService
	Catalog        catalog.CatalogService
	Addresses      address.AddressService
	PaymentMethods payment.PaymentService
	Carts          cart.CartService
	Orders         order.OrderService
	Roles          access.RoleResolver
}

// NewServices builds every service over the shared pool. The order checkout counter is
// registered on m.
func NewServices(db *gorm.DB, tokens *jwtutil.JWTUtil, m *metrics.HTTPMetrics, logLevel string) *Services {
	accountLog := logger.NewLogger(logLevel, &account.AccountLogHook{})
	catalogLog := logger.NewLogger(logLevel, &catalog.CatalogLogHook{})
	addressLog := logger.NewLogger(logLevel, &address.AddressLogHook{})
	paymentLog := logger.NewLogger(logLevel, &payment.PaymentLogHook{})
	cartLog := logger.NewLogger(logLevel, &cart.CartLogHook{})
	orderLog := logger.NewLogger(logLevel, &order.OrderLogHook{})

	accountStorage := account.NewStorage(db)
	catalogService := catalog.NewService(catalog.NewStorage(db), catalogLog)
	addressService := address.NewService(address.NewStorage(db), accountStorage, addressLog)
	paymentService := payment.NewService(payment.NewStorage(db), paymentLog)
	cartService := cart.NewService(cart.NewStorage(db), catalogService, accountStorage, cartLog)

	return &Services{
		Accounts:       account.NewService(accountStorage, tokens, accountLog),
		Catalog:        catalogService,
		Addresses:      addressService,
		PaymentMethods: paymentService,
		Carts:          cartService,
		Orders: order.NewService(order.NewStorage(db), order.References{
			Accounts:       accountStorage,
			Products:       catalogService,
			Addresses:      addressService,
			PaymentMethods: paymentService,
			Carts:          cartService,
		}, m.Registerer(), orderLog),
		Roles: accountStorage,
	}
}

func NewRouter(services *Services, tokens *jwtutil.JWTUtil, m *metrics.HTTPMetrics, opts Options) *gin.Engine {
	log := logger.NewLogger(opts.LogLevel, &logger.MainLogHook{})
	accessLog := logger.NewLogger(opts.LogLevel, &access.AccessLogHook{})

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.CORS(opts.AllowedOrigins),
		m.Middleware(),
		middleware.ErrorHandler(log),
	)
	router.NoRoute(middleware.NoRoute)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	auth := access.Middleware(tokens, services.Roles, accessLog)
	api := router.Group("/api")
	account.NewHandler(services.Accounts, log).Register(api, auth)
	catalog.NewHandler(services.Catalog, log).Register(api, auth)
	address.NewHandler(services.Addresses, log).Register(api, auth)
	payment.NewHandler(services.PaymentMethods, log).Register(api, auth)
	cart.NewHandler(services.Carts, log).Register(api, auth)
	order.NewHandler(services.Orders, log).Register(api, auth)

	return router
}
