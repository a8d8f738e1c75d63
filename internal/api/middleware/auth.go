package middleware

import (
	"net/http"
	"strings"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// TokenVerifier returns the subject of a valid session token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware validates session tokens and sets user context. Paths in
// public are let through without a token.
func AuthMiddleware(verifier TokenVerifier, public ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.L().Debugf("[Auth] Missing Authorization header - Path: %s", c.Request.URL.Path)
			unauthorized(c, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			logger.L().Debugf("[Auth] Invalid header format - Path: %s", c.Request.URL.Path)
			unauthorized(c, "Invalid authorization header format")
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.L().Infof("[Auth] Invalid token - Path: %s, Error: %v", c.Request.URL.Path, err)
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: message})
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
