package routes

import (
	"github.com/gin-gonic/gin"

	"deskchat-server/internal/interfaces/httpserver/handlers"
	"deskchat-server/internal/interfaces/wsserver"
)

// Provider encapsulates route registration.
type Provider struct {
	handlers *handlers.Provider
	hub      *wsserver.Hub
}

// NewProvider builds the route registrar.
func NewProvider(handlerProvider *handlers.Provider, hub *wsserver.Hub) *Provider {
	return &Provider{
		handlers: handlerProvider,
		hub:      hub,
	}
}

// Register attaches all application routes.
func (p *Provider) Register(engine *gin.Engine) {
	engine.GET("/ws", p.hub.ServeWS())
	engine.POST("/upload", p.handlers.Upload.Upload)
	engine.GET("/parse-rss", p.handlers.Feed.Parse)

	api := engine.Group("/api")
	api.GET("/search", p.handlers.Search.Search)
	api.POST("/ai-chat", p.handlers.AIChat.Reply)
}
