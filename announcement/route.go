package announcement

import (
	"ibarangay-be/middleware"
	"ibarangay-be/notify"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, redisClient *redis.Client, events *notify.Service, phones PhoneLister) {
	repo := NewRepository(db)
	service := NewService(repo, redisClient, events, phones)
	handler := NewHandler(service)

	publicRoutes := r.Group("/api/announcements")
	{
		publicRoutes.GET("/published", handler.GetPublished)
	}

	staffRoutes := r.Group("/api/announcements")
	staffRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staffRoutes.POST("", handler.Create)
		staffRoutes.GET("", handler.GetAll)
		staffRoutes.GET("/:id", handler.GetByID)
		staffRoutes.PUT("/:id", handler.Update)
		staffRoutes.PUT("/publish/:id", handler.Publish)
		staffRoutes.DELETE("/:id", handler.Delete)
	}

	alertRoutes := r.Group("/api/alerts")
	alertRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		alertRoutes.POST("", handler.SendAlert)
	}
}
