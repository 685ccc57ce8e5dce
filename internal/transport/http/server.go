package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/store"
)

// NewServer builds the HTTP server with the REST and WebSocket routes.
func NewServer(manager *core.Manager, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery(), CORSMiddleware())

	rooms := NewRoomHandlers(st, logger)
	suggestions := NewSuggestHandlers(logger)
	ws := NewWSHandler(manager, st, logger)

	router.GET("/health", healthHandler)

	api := router.Group("/api")
	api.POST("/rooms", rooms.CreateRoom)
	api.GET("/rooms/:id", rooms.FetchRoom)
	api.POST("/autocomplete", suggestions.Autocomplete)

	router.GET("/ws/:room", ws.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
