package message

import (
	"ibarangay-be/middleware"
	"ibarangay-be/notify"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, events *notify.Service) {
	repo := NewRepository(db)
	service := NewService(repo, events)
	handler := NewHandler(service)

	messageRoutes := r.Group("/api/messages")
	messageRoutes.Use(middleware.AuthMiddleware())
	{
		messageRoutes.POST("/threads", handler.OpenThread)
		messageRoutes.GET("/threads", handler.GetThreads)
		messageRoutes.GET("/threads/:id", handler.GetMessages)
		messageRoutes.POST("/threads/:id/reply", handler.Reply)
	}

	staffRoutes := r.Group("/api/messages")
	staffRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staffRoutes.PUT("/threads/close/:id", handler.CloseThread)
	}
}
