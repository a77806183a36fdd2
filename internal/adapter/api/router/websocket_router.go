package router

import (
	"github.com/labstack/echo/v4"

	"passr/internal/adapter/api/handler"
)

// Auth happens inside the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
