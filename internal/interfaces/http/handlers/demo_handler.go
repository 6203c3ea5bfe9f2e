package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"keygate.backend/internal/interfaces/http/middleware"
)

// DemoHandler serves the documented sample endpoints that sit behind API
// key authentication. They exist so key holders can exercise a key without
// touching real resources.
type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

// Ping answers a minimal authenticated GET
func (h *DemoHandler) Ping(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"ownerId": ownerID,
	})
}

// Echo returns the posted JSON body back to the caller
func (h *DemoHandler) Echo(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	ownerID, _ := middleware.GetOwnerID(c)
	c.JSON(http.StatusOK, gin.H{
		"echo":    body,
		"ownerId": ownerID,
	})
}
