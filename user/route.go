package user

import (
	"ibarangay-be/middleware"
	"ibarangay-be/notify"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, redisClient *redis.Client, events *notify.Service) *UserRepository {
	repo := NewUserRepository(db)
	service := NewUserService(repo, redisClient, events)
	handler := NewUserHandler(service)

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", handler.Register)
		authRoutes.POST("/login", handler.Login)
		authRoutes.POST("/refresh", handler.RefreshToken)
	}

	authRoutes.Use(middleware.AuthMiddleware())
	{
		authRoutes.POST("/logout", handler.Logout)
		authRoutes.GET("/profile", handler.GetProfile)
	}

	userRoutes := r.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		userRoutes.POST("", handler.CreateStaff)
		userRoutes.GET("", handler.GetAll)
		userRoutes.GET("/:id", handler.GetByID)
		userRoutes.PUT("/approve/:id", handler.Approve)
		userRoutes.PUT("/reject/:id", handler.Reject)
		userRoutes.PUT("/:id", handler.Update)
		userRoutes.DELETE("/:id", handler.Delete)
	}

	return repo
}
