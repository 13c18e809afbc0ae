package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/four-chain/backend/internal/transport/http/middleware"
	"github.com/iamasit07/four-chain/backend/internal/transport/websocket"
	"github.com/rs/zerolog"
)

func NewRouter(board *BoardHandler, ws *websocket.Handler, allowedOrigins []string, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins, logger))

	router.GET("/", board.Home)
	router.GET("/healthz", board.Health)

	api := router.Group("/api")
	{
		api.GET("/board", board.GetBoard)
		api.POST("/cell/click", board.ClickCell)
		api.POST("/board/reset", board.ResetBoard)
	}

	// WebSocket Route (origin checked by the upgrader)
	router.GET("/ws", gin.WrapF(ws.HandleWebSocket))

	return router
}
