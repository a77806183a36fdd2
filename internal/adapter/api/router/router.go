package router

import (
	"github.com/labstack/echo/v4"

	"passr/internal/adapter/api/handler"
	"passr/internal/adapter/api/middleware"
)

type Handlers struct {
	Listing   *handler.ListingHandler
	Offer     *handler.OfferHandler
	Chat      *handler.ChatHandler
	User      *handler.UserHandler
	Health    *handler.HealthHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupListingRouter(e, h.Listing, authMiddleware)
	SetupOfferRouter(e, h.Offer, authMiddleware, rateLimit)
	SetupChatRouter(e, h.Chat, authMiddleware, rateLimit)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}
