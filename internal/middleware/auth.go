package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/config"
	"consultorio-server/internal/utils"
)

// SessionCookie is the cookie holding the session token issued at login.
const SessionCookie = "session_token"

// SessionHeader also carries the session token in the login response.
const SessionHeader = "X-Session-Token"

var errNoToken = errors.New("no session token")

// AuthMiddleware creates a middleware for JWT authentication. The token is
// read from a Bearer Authorization header or, failing that, the session
// cookie.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := sessionToken(c)
		if err != nil {
			utils.Unauthorized(c, err)
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, err)
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}
