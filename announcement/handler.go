package announcement

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

func (h *Handler) Create(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Title and content are required")
		return
	}

	created, err := h.service.Create(ctx.GetInt64("user_id"), req.Title, req.Content, req.Category)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Announcement created successfully", created)
}

func (h *Handler) GetAll(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	filter := Filter{
		Category: ctx.DefaultQuery("category", ""),
		Search:   ctx.DefaultQuery("search", ""),
		Limit:    limit,
		Offset:   offset,
	}

	announcements, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Announcements retrieved successfully", announcements, total, limit, offset)
}

func (h *Handler) GetPublished(ctx *gin.Context) {
	announcements, err := h.service.GetPublished()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Announcements retrieved successfully", announcements)
}

func (h *Handler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	a, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Announcement retrieved successfully", a)
}

func (h *Handler) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, req.Title, req.Content, req.Category)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Announcement updated successfully", updated)
}

func (h *Handler) Publish(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	published, err := h.service.Publish(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Announcement published successfully", published)
}

func (h *Handler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Announcement deleted successfully", nil)
}

func (h *Handler) SendAlert(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Title and message are required")
		return
	}

	alert, err := h.service.SendAlert(ctx.GetInt64("user_id"), req.Title, req.Message)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Emergency alert sent", alert)
}
