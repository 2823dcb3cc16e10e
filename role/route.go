package role

import (
	"ibarangay-be/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	repo := NewRoleRepository(db)
	service := NewRoleService(repo)
	handler := NewRoleHandler(service)

	roleRoutes := r.Group("/api/roles")
	roleRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		roleRoutes.POST("", handler.Create)
		roleRoutes.GET("", handler.GetAll)
		roleRoutes.GET("/:id", handler.GetByID)
		roleRoutes.PUT("/:id", handler.Update)
		roleRoutes.DELETE("/:id", handler.Delete)
	}
}
