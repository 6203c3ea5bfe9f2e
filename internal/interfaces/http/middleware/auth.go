package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"keygate.backend/pkg/jwt"
	"keygate.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// OwnerIDKey is the context key for the authenticated owner
	OwnerIDKey = "ownerId"
	// OwnerEmailKey is the context key for the owner email
	OwnerEmailKey = "ownerEmail"
)

// AuthMiddleware authenticates dashboard requests with a Bearer session
// token minted by the identity collaborator, and puts the owner identity in
// the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug(c.Request.Context(), "session token rejected",
				zap.String("path", c.Request.URL.Path), zap.Error(err))
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(OwnerIDKey, claims.OwnerID)
		c.Set(OwnerEmailKey, claims.Email)

		c.Next()
	}
}

// GetOwnerID gets the authenticated owner ID from context
func GetOwnerID(c *gin.Context) (uuid.UUID, bool) {
	ownerID, exists := c.Get(OwnerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := ownerID.(uuid.UUID)
	return id, ok
}
