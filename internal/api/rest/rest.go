// Package rest exposes the mint engine over HTTP. Public routes cover
// mint attempts and status reads; admin routes (force reveal, pause)
// require authentication and an authority wallet matching the
// collection configuration.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/analos-labs/launchpad-engine/internal/api/middleware"
)

// SetupRoutes registers all REST endpoints on the router
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		collections := v1.Group("/collections")
		{
			collections.GET("", handler.ListCollections)
			collections.POST("/:id/mints", handler.AttemptMint)
			collections.GET("/:id/reveal", handler.GetRevealStatus)
			collections.GET("/:id/tiers/:tier", handler.GetTierStatus)

			admin := collections.Group("")
			admin.Use(middleware.Auth(authCfg))
			{
				admin.POST("/:id/reveal", handler.ForceReveal)
				admin.POST("/:id/pause", handler.SetPaused)
			}
		}
	}
}
