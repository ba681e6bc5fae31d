// Package middleware holds the gin middlewares shared by the router.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/auth"
)

const actorContextKey = "actor"

// Auth validates the Bearer token and resolves the acting user. The user is
// loaded fresh on every request so capability flags granted by a redeemed
// code take effect immediately.
func Auth(authSvc *auth.Service, jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be Bearer {token}"})
			return
		}

		claims, err := auth.ParseToken(parts[1], jwtSecret)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		actor, err := authSvc.ResolveActor(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Warn("token subject no longer resolves", zap.String("user_id", claims.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFrom extracts the authenticated actor stored by Auth.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}
