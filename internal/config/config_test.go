package config_test

import (
	"testing"

	"catalog/internal/config"
	"catalog/internal/validation"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, config.DriverJSON, cfg.StoreDriver)
	assert.Equal(t, "data/products.json", cfg.DataFile)
	assert.Equal(t, validation.DefaultSellerDomains, cfg.SellerEmailDomains)
	assert.False(t, cfg.AuthEnabled())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", " SQLite ")
	v.Set("DATABASE_DSN", "file::memory:")
	v.Set("SELLER_EMAIL_DOMAINS", "shop.com, , apple.com")
	v.Set("ADMIN_PASSWORD", "s3cret")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"shop.com", "apple.com"}, cfg.SellerEmailDomains)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromViper_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9999")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Port)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
}

func TestFromViper_RejectsUnknownDriver(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
}

func TestFromViper_DatabaseDriverNeedsDSN(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "postgres")
	v.Set("DATABASE_DSN", "")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "DATABASE_DSN")
}
