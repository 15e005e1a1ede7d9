// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/pkg/auth"
)

// Context keys set by the auth middlewares and read by handlers.
const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxIsAdmin   = "is_admin"
)

// bearerClaims validates the request's bearer token and returns its
// claims, or nil when the header is absent, malformed, or the token is
// invalid.
func bearerClaims(c *gin.Context, jwtManager *auth.JWTManager) *auth.Claims {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil
	}
	tokenString := auth.ExtractTokenFromHeader(header)
	if tokenString == "" {
		return nil
	}
	claims, err := jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserEmail, claims.Email)
	c.Set(ctxIsAdmin, claims.IsAdmin)
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		claims := bearerClaims(c, jwtManager)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or missing access token",
			})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware authenticates when a valid token is present
// and continues anonymously otherwise. Guest cart and checkout routes
// use this.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		if claims := bearerClaims(c, jwtManager); claims != nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// AdminMiddleware gates a route group to admin users. It must run
// after AuthMiddleware, which sets the admin flag.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ctxIsAdmin)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user's ID, if any.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserEmailFromContext returns the authenticated user's email, if any.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxUserEmail)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// IsAdminFromContext reports whether the request carries an admin token.
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get(ctxIsAdmin)
	if !exists {
		return false
	}
	return isAdmin.(bool)
}
