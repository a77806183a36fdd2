package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"passr/internal/adapter/api/handler"
	"passr/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetUserChats)
	chats.GET("/:id", chatHandler.GetChatByID)

	chats.POST("/:id/messages", chatHandler.SendMessage, rateLimit.Limit("send_message", 30, 30, time.Minute))
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
}
