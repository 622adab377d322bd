// Command migrate brings the schema up to date, seeds reference data and repairs orders
// without items. It is safe to run repeatedly; the API server never migrates on its own.
package main

import (
	"context"
	"time"

	"github.com/voduybaokhanh/shop-service/config"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/address"
	"github.com/voduybaokhanh/shop-service/internal/cart"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/order"
	"github.com/voduybaokhanh/shop-service/internal/payment"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
	"github.com/voduybaokhanh/shop-service/pkg/logger"
	"github.com/voduybaokhanh/shop-service/pkg/postgres"
	"gorm.io/gorm"
)

type step struct {
	name string
	run  func(db *gorm.DB) error
}

var steps = []step{
	{"accounts", account.RunSchemaMigration},
	{"catalog", catalog.RunSchemaMigration},
	{"addresses", address.RunSchemaMigration},
	{"payment methods", payment.RunSchemaMigration},
	{"carts", cart.RunSchemaMigration},
	{"orders", order.RunSchemaMigration},
}

func main() {
	env, err := config.GetEnvironment()
	log := logger.NewLogger(env.LogLvl, &logger.MainLogHook{})
	if err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := postgres.NewConnectionPool(ctx, postgres.Config{
		URL:      env.DatabaseURL,
		Host:     env.PgHost,
		Port:     env.PgPort,
		Username: env.PgUser,
		Password: env.PgPassword,
		DBName:   env.PgDbName,
		SSLMode:  env.SSLMode,
		TimeZone: env.TimeZone,
	}, log)
	if err != nil {
		log.Fatalf("failed connection to db: %v", err)
	}
	defer postgres.Close(db)

	for _, s := range steps {
		if err := s.run(db.WithContext(ctx)); err != nil {
			log.Fatalf("migration %s failed: %v", s.name, err)
		}
		log.Infof("migrated %s", s.name)
	}

	if env.AdminEmail != "" && env.AdminPassword != "" {
		tokens, err := jwtutil.New(jwtutil.Config{SigningKey: env.JWTSecret})
		if err != nil {
			log.Fatalf("failed to init tokens: %v", err)
		}
		accounts := account.NewService(account.NewStorage(db), tokens, logger.NewLogger(env.LogLvl, &account.AccountLogHook{}))
		if err := accounts.EnsureAdmin(ctx, env.AdminEmail, "Administrator", env.AdminPassword); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		log.Infof("admin account %s is ready", env.AdminEmail)
	}

	orders := order.NewService(order.NewStorage(db), order.References{}, nil, logger.NewLogger(env.LogLvl, &order.OrderLogHook{}))
	removed, err := orders.ReconcileOrphans(ctx)
	if err != nil {
		log.Fatalf("failed to reconcile orders: %v", err)
	}
	log.Infof("migration finished, %d orphaned orders removed", removed)
}
