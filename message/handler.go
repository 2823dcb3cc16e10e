package message

import (
	"net/http"
	"strconv"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isStaff(ctx *gin.Context) bool {
	accountType := ctx.GetString("account_type")
	return accountType == "staff" || accountType == "admin"
}

func (h *Handler) OpenThread(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Subject and body are required")
		return
	}

	t, err := h.service.OpenThread(ctx.GetInt64("user_id"), req.Subject, req.Body)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Thread opened successfully", t)
}

func (h *Handler) GetThreads(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	filter := ThreadFilter{
		Status: ctx.DefaultQuery("status", ""),
		Limit:  limit,
		Offset: offset,
	}
	if !isStaff(ctx) {
		filter.ResidentID = ctx.GetInt64("user_id")
	}

	threads, total, err := h.service.GetThreads(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Threads retrieved successfully", threads, total, limit, offset)
}

func (h *Handler) GetMessages(ctx *gin.Context) {
	threadID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid thread ID")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, total, err := h.service.GetMessages(threadID, ctx.GetInt64("user_id"), isStaff(ctx), limit, offset)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Messages retrieved successfully", messages, total, limit, offset)
}

func (h *Handler) Reply(ctx *gin.Context) {
	threadID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid thread ID")
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Message body is required")
		return
	}

	m, err := h.service.Reply(threadID, ctx.GetInt64("user_id"), isStaff(ctx), req.Body)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Message sent successfully", m)
}

func (h *Handler) CloseThread(ctx *gin.Context) {
	threadID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid thread ID")
		return
	}

	t, err := h.service.CloseThread(threadID)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Thread closed successfully", t)
}
