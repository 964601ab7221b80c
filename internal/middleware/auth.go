package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"plateful/backend/internal/auth"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("user")

// Auth creates a middleware that resolves the caller's identity.
//
// A bearer token is tried first. When the token is absent or rejected and
// the X-User-Id fallback is enabled, the client-supplied header is trusted
// instead. A request with neither is answered with 401.
func Auth(verifier *auth.Verifier, allowUserHeader bool, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := ""

		authHeader := c.Request.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			id, err := verifier.UserID(tokenString)
			if err != nil {
				logger.WithError(err).Debug("bearer token rejected")
			} else {
				userID = id
			}
		}

		if userID == "" && allowUserHeader {
			userID = c.Request.Header.Get("X-User-Id")
		}

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserFromContext returns the authenticated user id, or "" when the auth
// middleware has already rejected the request.
func UserFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userContextKey).(string)
	return id
}
