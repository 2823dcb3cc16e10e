package notify

import (
	"ibarangay-be/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, service *Service) {
	handler := NewHandler(service)

	routes := r.Group("/api/notifications")
	routes.Use(middleware.AuthMiddleware())
	{
		routes.GET("", handler.GetMine)
		routes.PUT("/read/:id", handler.MarkRead)
	}
}
