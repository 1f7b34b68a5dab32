package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub/internal/auth"
	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/service"
	"github.com/learnhub/learnhub/internal/types"
)

// AuthenticateMiddleware authenticates requests carrying a bearer token
// issued by the configured identity provider. It sets the user ID in the
// request context for downstream handlers and mirrors the user record into
// the local store.
func AuthenticateMiddleware(provider auth.Provider, userService service.UserService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := provider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			log.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), types.CtxUserID, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		// Best effort, an out of date mirror only degrades usage history
		// enrichment.
		if err := userService.SyncFromClaims(ctx, claims); err != nil {
			log.Warnw("failed to sync user record",
				"user_id", claims.UserID,
				"error", err,
			)
		}

		c.Next()
	}
}
