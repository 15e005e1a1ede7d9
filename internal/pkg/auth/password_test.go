// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvety/storefront/internal/config"
)

func passwordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps tests fast
	return NewPasswordManager(cfg)
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := passwordManager()

	hash, err := pm.HashPassword("correct1horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct1horse", hash)

	assert.NoError(t, pm.VerifyPassword("correct1horse", hash))
	assert.Error(t, pm.VerifyPassword("wrong1horse", hash))
}

func TestValidatePassword(t *testing.T) {
	pm := passwordManager()

	assert.NoError(t, pm.ValidatePassword("abcdefg1"))
	assert.Error(t, pm.ValidatePassword("short1"))
	assert.Error(t, pm.ValidatePassword("alllettersonly"))
	assert.Error(t, pm.ValidatePassword("12345678"))
	assert.Error(t, pm.ValidatePassword(strings.Repeat("a1", 70)))
}

func TestHashPasswordRejectsWeakInput(t *testing.T) {
	pm := passwordManager()

	_, err := pm.HashPassword("weak")
	assert.Error(t, err)
}
