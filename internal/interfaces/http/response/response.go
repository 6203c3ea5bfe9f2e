package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "keygate.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own status; anything
// else becomes a generic 500 so store failures never leak details.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// AbortError sends an error response and stops the handler chain
func AbortError(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}
