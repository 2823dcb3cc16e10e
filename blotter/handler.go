package blotter

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

func (h *Handler) File(ctx *gin.Context) {
	var req struct {
		Accused       Accused `json:"accused" binding:"required"`
		IncidentDate  string  `json:"incident_date" binding:"required"`
		DateReported  string  `json:"date_reported"`
		Location      string  `json:"location"`
		ComplaintType string  `json:"complaint_type" binding:"required"`
		Details       string  `json:"complaint_details"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	incidentDate, err := time.Parse("2006-01-02", req.IncidentDate)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid incident_date, expected YYYY-MM-DD")
		return
	}

	var dateReported time.Time
	if req.DateReported != "" {
		dateReported, err = time.Parse("2006-01-02", req.DateReported)
		if err != nil {
			util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid date_reported, expected YYYY-MM-DD")
			return
		}
	}

	complainantID := ctx.GetInt64("user_id")

	filed, err := h.service.File(complainantID, req.Accused, incidentDate, dateReported, req.Location, req.ComplaintType, req.Details)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Blotter case filed successfully", filed)
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

	complainantID, _ := strconv.ParseInt(ctx.DefaultQuery("complainant_id", "0"), 10, 64)

	status := ctx.DefaultQuery("status", "")
	if status != "" && !Status(status).Valid() {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid status filter")
		return
	}

	filter := Filter{
		Status:        status,
		Search:        ctx.DefaultQuery("search", ""),
		ComplainantID: complainantID,
		Limit:         limit,
		Offset:        offset,
	}

	cases, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Blotter cases retrieved successfully", cases, total, limit, offset)
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
		ComplainantID: ctx.GetInt64("user_id"),
		Status:        status,
		Limit:         limit,
		Offset:        offset,
	}

	cases, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Blotter cases retrieved successfully", cases, total, limit, offset)
}

func (h *Handler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	c, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Blotter case retrieved successfully", c)
}

func (h *Handler) GetSummary(ctx *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Summary retrieved successfully", summary)
}

func (h *Handler) GetOverdueCount(ctx *gin.Context) {
	count, err := h.service.CountOverdue(time.Now())
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Overdue count retrieved successfully", gin.H{"overdue_count": count})
}

func (h *Handler) BeginInvestigation(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	c, err := h.service.BeginInvestigation(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Case moved to investigation", c)
}

func (h *Handler) RecordMeeting(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req struct {
		MeetingNumber int      `json:"meeting_number" binding:"required"`
		Date          string   `json:"date" binding:"required"`
		Location      string   `json:"location"`
		Attendees     []string `json:"attendees"`
		Discussion    string   `json:"discussion"`
		Agreements    string   `json:"agreements"`
		NextSteps     string   `json:"next_steps"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02T15:04", req.Date)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DDTHH:MM")
		return
	}

	meeting := Meeting{
		MeetingNumber: req.MeetingNumber,
		Date:          date,
		Location:      req.Location,
		Attendees:     req.Attendees,
		Discussion:    req.Discussion,
		Agreements:    req.Agreements,
		NextSteps:     req.NextSteps,
		Status:        MeetingScheduled,
	}

	c, err := h.service.RecordMeeting(id, meeting)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Meeting recorded successfully", c)
}

func (h *Handler) UpdateMeetingStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	meetingNumber, err := strconv.Atoi(ctx.Param("meeting"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid meeting number")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.service.UpdateMeetingStatus(id, meetingNumber, MeetingStatus(req.Status))
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Meeting updated successfully", c)
}

func (h *Handler) IssueCFA(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	issuedBy := ctx.GetInt64("user_id")

	c, err := h.service.IssueCFA(id, issuedBy, req.Reason)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Certification to File Action issued", c)
}

func (h *Handler) Escalate(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req struct {
		ResolutionDetails string `json:"resolution_details" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Resolution details are required")
		return
	}

	c, err := h.service.Escalate(id, req.ResolutionDetails)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Case escalated to PNP", c)
}

func (h *Handler) Resolve(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req struct {
		Outcome           string `json:"outcome" binding:"required"`
		ResolutionDetails string `json:"resolution_details" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Outcome and resolution details are required")
		return
	}

	c, err := h.service.Resolve(id, Status(req.Outcome), req.ResolutionDetails)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Case closed successfully", c)
}

func (h *Handler) RecordContactAttempt(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req struct {
		Method     string `json:"method" binding:"required"`
		Successful *bool  `json:"successful" binding:"required"`
		Notes      string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Method and successful flag are required")
		return
	}

	c, err := h.service.RecordContactAttempt(id, req.Method, *req.Successful, req.Notes)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Contact attempt recorded", c)
}
