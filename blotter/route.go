package blotter

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

	caseRoutes := r.Group("/api/blotter")
	caseRoutes.Use(middleware.AuthMiddleware())
	{
		caseRoutes.POST("", handler.File)
		caseRoutes.GET("/mine", handler.GetMine)
		caseRoutes.GET("/:id", handler.GetByID)
	}

	staffRoutes := r.Group("/api/blotter")
	staffRoutes.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staffRoutes.GET("", handler.GetAll)
		staffRoutes.GET("/summary", handler.GetSummary)
		staffRoutes.GET("/overdue", handler.GetOverdueCount)
		staffRoutes.PUT("/investigate/:id", handler.BeginInvestigation)
		staffRoutes.POST("/:id/meetings", handler.RecordMeeting)
		staffRoutes.PUT("/:id/meetings/:meeting", handler.UpdateMeetingStatus)
		staffRoutes.POST("/:id/cfa", handler.IssueCFA)
		staffRoutes.PUT("/escalate/:id", handler.Escalate)
		staffRoutes.PUT("/resolve/:id", handler.Resolve)
		staffRoutes.POST("/:id/contacts", handler.RecordContactAttempt)
	}

	return service
}
