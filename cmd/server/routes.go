package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"keygate.backend/internal/interfaces/http/handlers"
	"keygate.backend/pkg/metrics"
)

type routeDeps struct {
	apiKeyHandler        *handlers.ApiKeyHandler
	demoHandler          *handlers.DemoHandler
	authMiddleware       gin.HandlerFunc
	apiKeyAuthMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Key management (owner session required)
		keys := v1.Group("/keys")
		keys.Use(d.authMiddleware)
		{
			keys.POST("", d.apiKeyHandler.CreateKey)
			keys.GET("", d.apiKeyHandler.ListKeys)
			keys.DELETE("", d.apiKeyHandler.RevokeKey)
		}

		// Downstream endpoints (api key required)
		protected := v1.Group("")
		protected.Use(d.apiKeyAuthMiddleware)
		{
			protected.GET("/ping", d.demoHandler.Ping)
			protected.POST("/echo", d.demoHandler.Echo)
		}
	}
}
