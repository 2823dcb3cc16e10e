package user

import (
	"net/http"
	"strconv"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *UserService
}

func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid registration data")
		return
	}

	u, err := h.service.Register(req)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Registration submitted, awaiting staff approval", u)
}

func (h *UserHandler) CreateStaff(ctx *gin.Context) {
	var u User
	if err := ctx.ShouldBindJSON(&u); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateStaff(&u)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Staff account created successfully", created)
}

func (h *UserHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if util.IsStateConflict(err) {
			util.ErrorResponse(ctx, http.StatusForbidden, err.Error())
			return
		}
		util.ErrorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Login successful", resp)
}

func (h *UserHandler) Logout(ctx *gin.Context) {
	if err := h.service.Logout(ctx.GetInt64("user_id")); err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to log out")
		return
	}

	util.SuccessResponse(ctx, "Logged out successfully", nil)
}

func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Refresh token is required")
		return
	}

	accessToken, err := h.service.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Token refreshed successfully", gin.H{"access_token": accessToken})
}

func (h *UserHandler) GetProfile(ctx *gin.Context) {
	u, err := h.service.GetByID(ctx.GetInt64("user_id"))
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Profile retrieved successfully", u)
}

func (h *UserHandler) GetAll(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	filter := Filter{
		AccountType: ctx.DefaultQuery("account_type", ""),
		Status:      ctx.DefaultQuery("status", ""),
		Search:      ctx.DefaultQuery("search", ""),
		Limit:       limit,
		Offset:      offset,
	}

	users, total, err := h.service.GetAll(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.PaginatedResponse(ctx, "Users retrieved successfully", users, total, limit, offset)
}

func (h *UserHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "User retrieved successfully", u)
}

func (h *UserHandler) Approve(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, err := h.service.Approve(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Registration approved", u)
}

func (h *UserHandler) Reject(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.RejectRegistration(id, req.Reason)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Registration rejected", u)
}

func (h *UserHandler) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var u User
	if err := ctx.ShouldBindJSON(&u); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, &u)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "User updated successfully", updated)
}

func (h *UserHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "User deleted successfully", nil)
}
