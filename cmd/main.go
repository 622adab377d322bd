package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/voduybaokhanh/shop-service/config"
	"github.com/voduybaokhanh/shop-service/internal/app"
	"github.com/voduybaokhanh/shop-service/pkg/httpserver"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
	"github.com/voduybaokhanh/shop-service/pkg/logger"
	"github.com/voduybaokhanh/shop-service/pkg/metrics"
	"github.com/voduybaokhanh/shop-service/pkg/postgres"
)

func main() {
	log := logger.NewLogger("debug", &logger.MainLogHook{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	env, err := config.GetEnvironment()
	if err != nil {
		log.Fatalf("invalid environment: %v", err)
	}
	log = logger.NewLogger(env.LogLvl, &logger.MainLogHook{})

	if env.LogLvl != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewConnectionPool(context.Background(), postgres.Config{
		URL:             env.DatabaseURL,
		Host:            env.PgHost,
		Port:            env.PgPort,
		Username:        env.PgUser,
		Password:        env.PgPassword,
		DBName:          env.PgDbName,
		SSLMode:         env.SSLMode,
		TimeZone:        env.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatalf("failed connection to db: %v", err)
	}
	defer postgres.Close(db)

	tokens, err := jwtutil.New(jwtutil.Config{
		SigningKey: env.JWTSecret,
		TTL:        cfg.Auth.TokenTTL,
		Issuer:     cfg.Auth.Issuer,
	})
	if err != nil {
		log.Fatalf("failed to init tokens: %v", err)
	}

	httpMetrics := metrics.NewHTTPMetrics("shop-service")
	services := app.NewServices(db, tokens, httpMetrics, env.LogLvl)
	router := app.NewRouter(services, tokens, httpMetrics, app.Options{
		LogLevel:       env.LogLvl,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := httpserver.NewServer(cfg.Server.Port, router, httpserver.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	go func() {
		log.Infof("listening on %s", cfg.Server.Port)
		if err := server.Run(); err != nil {
			log.Fatalf("failed running server: %v", err)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	oscall := <-interrupt
	log.Infof("Shutdown server, %s", oscall)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Error occured on server shutting down: %v", err)
	}
}
