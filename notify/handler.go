package notify

import (
	"net/http"
	"strconv"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMine(ctx *gin.Context) {
	userID := ctx.GetInt64("user_id")

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := h.service.GetByUser(userID, limit, offset)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Notifications retrieved successfully", notifications, total, limit, offset)
}

func (h *Handler) MarkRead(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	userID := ctx.GetInt64("user_id")
	if err := h.service.MarkRead(id, userID); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Notification marked as read", nil)
}
