package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"passr/internal/adapter/api/handler"
	"passr/internal/adapter/api/middleware"
)

func SetupOfferRouter(e *echo.Echo, offerHandler *handler.OfferHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	offers := e.Group("/v1/offers")
	offers.Use(authMiddleware.Authenticate)
	offers.POST("", offerHandler.CreateOffer, rateLimit.Limit("create_offer", 10, 10, time.Minute))
	offers.GET("/:id", offerHandler.GetOffer)
	offers.PATCH("/:id/status", offerHandler.UpdateOfferStatus)

	myOffers := e.Group("/v1/my-offers")
	myOffers.Use(authMiddleware.Authenticate)
	myOffers.GET("", offerHandler.ListMyOffers)

	receivedOffers := e.Group("/v1/received-offers")
	receivedOffers.Use(authMiddleware.Authenticate)
	receivedOffers.GET("", offerHandler.ListReceivedOffers)
}
