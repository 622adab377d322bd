package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	// ShutdownTimeout bounds how long in-flight requests get after SIGTERM.
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

type AuthConfig struct {
	TokenTTL time.Duration `mapstructure:"tokenTTL"`
	Issuer   string        `mapstructure:"issuer"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type DatabaseConfig struct {
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Database DatabaseConfig `mapstructure:"database"`
}

var vp *viper.Viper

func LoadConfig() (Config, error) {
	return LoadConfigFrom("config")
}

// LoadConfigFrom reads config.json from dir. Missing keys keep their defaults.
func LoadConfigFrom(dir string) (Config, error) {
	vp = viper.New()

	var config Config

	vp.SetConfigName("config")
	vp.SetConfigType("json")
	vp.AddConfigPath(dir)

	vp.SetDefault("server.port", ":8080")
	vp.SetDefault("server.readTimeout", "10s")
	vp.SetDefault("server.writeTimeout", "10s")
	vp.SetDefault("server.shutdownTimeout", "15s")
	vp.SetDefault("auth.tokenTTL", "24h")
	vp.SetDefault("auth.issuer", "shop-service")
	vp.SetDefault("cors.allowedOrigins", []string{"*"})

	err := vp.ReadInConfig()
	if err != nil {
		return Config{}, err
	}

	err = vp.Unmarshal(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
