// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/pkg/auth"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront Test"
	cfg.JWT.Secret = "test-secret-at-least-32-characters!!"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	return cfg
}

func authRouter(cfg *config.Config, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"authenticated": ok,
			"user_id":       userID,
			"is_admin":      IsAdminFromContext(c),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := authRouter(cfg, AuthMiddleware(cfg))

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(42, "shopper@example.com", false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	cfg := testConfig()
	r := authRouter(cfg, AuthMiddleware(cfg))

	token, err := auth.NewJWTManager(cfg).GenerateRefreshToken(42, "shopper@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := authRouter(cfg, OptionalAuthMiddleware(cfg))

	// Anonymous requests pass through without an identity
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// A valid token sets the identity
	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(7, "shopper@example.com", true)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)

	// An invalid token falls back to anonymous
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestAdminMiddleware(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", AuthMiddleware(cfg), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	manager := auth.NewJWTManager(cfg)
	adminToken, err := manager.GenerateAccessToken(1, "admin@example.com", true)
	require.NoError(t, err)
	userToken, err := manager.GenerateAccessToken(2, "shopper@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost:3000", "*.velvety.example"}

	assert.True(t, originAllowed("http://localhost:3000", allowed))
	assert.True(t, originAllowed("https://shop.velvety.example", allowed))
	assert.False(t, originAllowed("https://evil.example", allowed))
	assert.True(t, originAllowed("https://anything.example", []string{"*"}))
	assert.False(t, originAllowed("http://localhost:3000", nil))
}
