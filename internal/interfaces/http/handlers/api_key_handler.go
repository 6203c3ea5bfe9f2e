package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"keygate.backend/internal/domain/entities"
	"keygate.backend/internal/interfaces/http/middleware"
	"keygate.backend/internal/interfaces/http/response"
	"keygate.backend/internal/usecases"
	"keygate.backend/pkg/metrics"
)

type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{
		apiKeyUsecase: apiKeyUsecase,
	}
}

// CreateKey creates a new API key. The response carries the plaintext
// exactly once; it is never retrievable again.
func (h *ApiKeyHandler) CreateKey(c *gin.Context) {
	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key name is required"})
		return
	}

	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner not authenticated"})
		return
	}

	resp, err := h.apiKeyUsecase.CreateKey(c.Request.Context(), ownerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.KeysCreated.Inc()
	c.JSON(http.StatusCreated, resp)
}

// ListKeys lists the owner's keys, revoked included
func (h *ApiKeyHandler) ListKeys(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner not authenticated"})
		return
	}

	views, err := h.apiKeyUsecase.ListKeys(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": views})
}

// RevokeKey revokes one of the owner's keys. The key id arrives as the
// keyId query parameter; a foreign key is reported as not found.
func (h *ApiKeyHandler) RevokeKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Query("keyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}

	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner not authenticated"})
		return
	}

	if err := h.apiKeyUsecase.RevokeKey(c.Request.Context(), ownerID, keyID); err != nil {
		response.Error(c, err)
		return
	}

	metrics.KeysRevoked.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
