// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.JWT.Secret = "test-secret-at-least-32-characters!!"
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "storefront_db"
	cfg.Database.User = "storefront_user"
	cfg.Redis.Host = "localhost"
	cfg.Server.Port = "8080"
	cfg.Shipping.StandardCents = 999
	cfg.Shipping.ExpressCents = 1499
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Velvety Storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, int64(999), cfg.Shipping.StandardCents)
	assert.Equal(t, int64(5000), cfg.Shipping.StandardFreeOverCents)
	assert.Equal(t, int64(1499), cfg.Shipping.ExpressCents)

	assert.Contains(t, cfg.Security.CORSAllowedHeaders, "X-Session-ID")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHIPPING_STANDARD_CENTS", "1299")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_NAME", "Test Shop")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1299), cfg.Shipping.StandardCents)
	assert.Equal(t, "Test Shop", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	shortSecret := validConfig()
	shortSecret.JWT.Secret = "too-short"
	assert.Error(t, shortSecret.Validate())

	noDB := validConfig()
	noDB.Database.Host = ""
	assert.Error(t, noDB.Validate())

	noRedis := validConfig()
	noRedis.Redis.Host = ""
	assert.Error(t, noRedis.Validate())

	negativeShipping := validConfig()
	negativeShipping.Shipping.ExpressCents = -1
	assert.Error(t, negativeShipping.Validate())
}

func TestConnectionStrings(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Port = "5432"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "disable"
	cfg.Redis.Port = "6379"

	assert.Equal(t,
		"host=localhost port=5432 user=storefront_user password=secret dbname=storefront_db sslmode=disable",
		cfg.GetDatabaseDSN())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}
