package request

import (
	"net/http"
	"strconv"
	"time"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(ctx *gin.Context) {
	var req struct {
		DocumentTypes []string `json:"document_types" binding:"required"`
		Purpose       string   `json:"purpose"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	residentID := ctx.GetInt64("user_id")

	created, err := h.service.Submit(residentID, req.DocumentTypes, req.Purpose)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Document request submitted successfully", created)
}

func (h *Handler) GetAll(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	residentID, _ := strconv.ParseInt(ctx.DefaultQuery("resident_id", "0"), 10, 64)

	status := ctx.DefaultQuery("status", "")
	if status != "" && !Status(status).Valid() {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid status filter")
		return
	}

	filter := Filter{
		Status:        status,
		Search:        ctx.DefaultQuery("search", ""),
		ResidentID:    residentID,
		Limit:         limit,
		Offset:        offset,
		SortBy:        ctx.DefaultQuery("sort_by", ""),
		SortDirection: ctx.DefaultQuery("sort_direction", ""),
	}

	requests, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Document requests retrieved successfully", requests, total, limit, offset)
}

func (h *Handler) GetMine(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	status := ctx.DefaultQuery("status", "")
	if status != "" && !Status(status).Valid() {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid status filter")
		return
	}

	filter := Filter{
		ResidentID: ctx.GetInt64("user_id"),
		Status:     status,
		Limit:      limit,
		Offset:     offset,
	}

	requests, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Document requests retrieved successfully", requests, total, limit, offset)
}

func (h *Handler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	req, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Document request retrieved successfully", req)
}

func (h *Handler) GetSummary(ctx *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Summary retrieved successfully", summary)
}

func (h *Handler) Approve(ctx *gin.Context) {
	h.applyTransition(ctx, h.service.Approve, "Document request approved successfully")
}

func (h *Handler) StartProcessing(ctx *gin.Context) {
	h.applyTransition(ctx, h.service.StartProcessing, "Document request moved to processing")
}

func (h *Handler) MarkReady(ctx *gin.Context) {
	h.applyTransition(ctx, h.service.MarkReady, "Document request is ready to claim")
}

func (h *Handler) MarkClaimed(ctx *gin.Context) {
	h.applyTransition(ctx, h.service.MarkClaimed, "Document request marked as claimed")
}

func (h *Handler) applyTransition(ctx *gin.Context, op func(int64) (*DocumentRequest, error), message string) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	req, err := op(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, message, req)
}

func (h *Handler) Reject(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Rejection reason is required")
		return
	}

	req, err := h.service.Reject(id, body.Reason)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Document request rejected", req)
}

func (h *Handler) SetPickupPeriod(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	start, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	req, err := h.service.SetPickupPeriod(id, start, end, body.Notes)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Pickup period set successfully", req)
}

func (h *Handler) ScheduleClaim(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	req, err := h.service.ScheduleClaim(id, date, body.Time)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Claim slot scheduled successfully", req)
}

// TriggerSweep lets an external scheduler run the sweep on demand. Guarded
// by the API key middleware, not user auth.
func (h *Handler) TriggerSweep(ctx *gin.Context) {
	result, err := h.service.Sweep(time.Now())
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Lifecycle sweep completed", result)
}
