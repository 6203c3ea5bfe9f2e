package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/usecases"
	"keygate.backend/pkg/logger"
	"keygate.backend/pkg/metrics"
)

// ApiKeyHeader is the transport location of the presented credential
const ApiKeyHeader = "x-api-key"

// apiKeyDenialBody is the single external denial. Unknown, revoked and
// absent credentials are indistinguishable to the caller; logs and metrics
// keep the distinction for audit.
var apiKeyDenialBody = gin.H{"error": "invalid or missing api key"}

// ApiKeyAuthMiddleware authenticates downstream requests presented with an
// API key and attaches the resolved owner to the request context.
func ApiKeyAuthMiddleware(apiKeyUsecase *usecases.ApiKeyUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(ApiKeyHeader)
		if presented == "" {
			metrics.Verifications.WithLabelValues(metrics.ResultMissing).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiKeyDenialBody)
			return
		}

		ownerID, err := apiKeyUsecase.VerifyKey(c.Request.Context(), presented)
		if err != nil {
			switch {
			case errors.Is(err, domainerrors.ErrKeyRevoked):
				metrics.Verifications.WithLabelValues(metrics.ResultRevoked).Inc()
				logger.Info(c.Request.Context(), "denied revoked api key",
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, apiKeyDenialBody)
			case errors.Is(err, domainerrors.ErrUnauthorized):
				metrics.Verifications.WithLabelValues(metrics.ResultUnknown).Inc()
				logger.Info(c.Request.Context(), "denied unknown api key",
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, apiKeyDenialBody)
			default:
				metrics.Verifications.WithLabelValues(metrics.ResultError).Inc()
				logger.Error(c.Request.Context(), "api key verification failed",
					zap.String("path", c.Request.URL.Path), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		metrics.Verifications.WithLabelValues(metrics.ResultAllowed).Inc()
		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}
