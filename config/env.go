package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

var (
	ErrMissingDatabase  = errors.New("DATABASE_URL or POSTGRES_HOST/PORT/USER/PASSWORD/DB must be set")
	ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")
)

type AppEnv struct {
	LogLvl string

	DatabaseURL string
	PgHost      string
	PgPort      string
	PgUser      string
	PgPassword  string
	PgDbName    string
	SSLMode     string
	TimeZone    string

	JWTSecret string

	AdminEmail    string
	AdminPassword string
}

// GetEnvironment reads the process environment, after loading a .env file when one exists.
// The database location and JWT_SECRET are mandatory.
func GetEnvironment() (env AppEnv, err error) {
	_ = godotenv.Load()

	env = AppEnv{
		LogLvl:        getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		PgHost:        getEnv("POSTGRES_HOST", ""),
		PgPort:        getEnv("POSTGRES_PORT", "5432"),
		PgUser:        getEnv("POSTGRES_USER", ""),
		PgPassword:    getEnv("POSTGRES_PASSWORD", ""),
		PgDbName:      getEnv("POSTGRES_DB", ""),
		SSLMode:       getEnv("POSTGRES_SSL_MODE", "disable"),
		TimeZone:      getEnv("POSTGRES_TIMEZONE", "UTC"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if env.DatabaseURL == "" && (env.PgHost == "" || env.PgPort == "" || env.PgUser == "" ||
		env.PgPassword == "" || env.PgDbName == "") {
		return env, ErrMissingDatabase
	}

	if env.JWTSecret == "" {
		return env, ErrMissingJWTSecret
	}

	return env, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}
