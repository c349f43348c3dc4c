package routes

import (
	"diskwarden/internal/config"
	"diskwarden/internal/controllers"
	"diskwarden/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func RegisterMonitorRoutes(r *gin.Engine, cfg *config.Config, log *logrus.Logger) {
	r.GET("/healthz", controllers.Healthz)

	api := r.Group("/api", middleware.AuthMiddleware(log, cfg.AuthEnabled()))
	{
		api.GET("/state", controllers.GetState)
		api.GET("/disks", controllers.GetDisks)
		api.GET("/alert", controllers.GetAlert)
	}
}
