// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"strings"

	"catalog/internal/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverJSON     = "json"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the resolved settings.
type Config struct {
	Env                string
	Port               string
	StoreDriver        string
	DataFile           string
	DatabaseDSN        string
	RabbitMQURL        string
	JWTSecret          string
	AdminUsername      string
	AdminPassword      string
	SellerEmailDomains []string
}

// Load reads a .env file if one exists, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper resolves a Config from v, applying defaults for unset keys.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", DriverJSON)
	v.SetDefault("DATA_FILE", "data/products.json")
	v.SetDefault("DATABASE_DSN", "catalog.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("SELLER_EMAIL_DOMAINS", "")
	v.AutomaticEnv()

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("APP_PORT"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DataFile:      v.GetString("DATA_FILE"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.SellerEmailDomains = splitList(v.GetString("SELLER_EMAIL_DOMAINS"))
	if len(cfg.SellerEmailDomains) == 0 {
		cfg.SellerEmailDomains = append([]string(nil), validation.DefaultSellerDomains...)
	}

	switch cfg.StoreDriver {
	case DriverJSON:
		if cfg.DataFile == "" {
			return nil, fmt.Errorf("DATA_FILE is required for the %s store", DriverJSON)
		}
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the %s store", cfg.StoreDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// AuthEnabled reports whether mutating routes require an admin token.
func (c *Config) AuthEnabled() bool {
	return c.AdminPassword != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
