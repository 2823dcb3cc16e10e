package request

import (
	"ibarangay-be/middleware"
	"ibarangay-be/notify"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, events *notify.Service) *Service {
	repo := NewRepository(db)
	service := NewService(repo, events)
	handler := NewHandler(service)

	requestRoutes := r.Group("/api/requests")
	requestRoutes.Use(middleware.AuthMiddleware())
	{
		requestRoutes.POST("", handler.Submit)
		requestRoutes.GET("/mine", handler.GetMine)
		requestRoutes.GET("/:id", handler.GetByID)
		requestRoutes.POST("/:id/schedule-claim", handler.ScheduleClaim)
		requestRoutes.PUT("/claimed/:id", handler.MarkClaimed)
	}

	staffRoutes := r.Group("/api/requests")
	staffRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staffRoutes.GET("", handler.GetAll)
		staffRoutes.GET("/summary", handler.GetSummary)
		staffRoutes.PUT("/approve/:id", handler.Approve)
		staffRoutes.PUT("/process/:id", handler.StartProcessing)
		staffRoutes.PUT("/ready/:id", handler.MarkReady)
		staffRoutes.PUT("/reject/:id", handler.Reject)
		staffRoutes.PUT("/:id/pickup-period", handler.SetPickupPeriod)
	}

	internalRoutes := r.Group("/api/internal/lifecycle")
	internalRoutes.Use(middleware.APIKeyMiddleware())
	{
		internalRoutes.POST("/sweep", handler.TriggerSweep)
	}

	return service
}
