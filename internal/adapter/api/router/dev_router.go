package router

import (
	"github.com/labstack/echo/v4"

	"passr/internal/adapter/api/handler"
	"passr/internal/adapter/api/middleware"
	"passr/pkg/logger"
)

// SetupDevRouter registers development-only helpers. The expire endpoint
// backdates a listing so the cleanup pipeline can be tested without waiting
// out the TTL.
func SetupDevRouter(e *echo.Echo, environment string, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware) {
	if environment != "development" {
		return
	}

	logger.Warn("Development routes enabled")

	dev := e.Group("/v1/dev")
	dev.Use(authMiddleware.Authenticate)
	dev.POST("/listings/:id/expire", listingHandler.ExpireListing)
}
