package routes

import (
	"diskwarden/internal/config"
	"diskwarden/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterStreamRoutes registers the WebSocket endpoint for real-time
// snapshot and alert-transition push.
func RegisterStreamRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/ws", controllers.HandleWebSocket(cfg.AuthEnabled()))
}
