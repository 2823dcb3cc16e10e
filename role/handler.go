package role

import (
	"net/http"
	"strconv"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	service *RoleService
}

func NewRoleHandler(service *RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

func (h *RoleHandler) Create(ctx *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Permissions []string `json:"permissions"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Role name is required")
		return
	}

	role, err := h.service.Create(req.Name, req.Permissions)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.CreatedResponse(ctx, "Role created successfully", role)
}

func (h *RoleHandler) GetAll(ctx *gin.Context) {
	roles, err := h.service.GetAll()
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Roles retrieved successfully", roles)
}

func (h *RoleHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid role ID")
		return
	}

	role, err := h.service.GetByID(id)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Role retrieved successfully", role)
}

func (h *RoleHandler) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid role ID")
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := h.service.Update(id, req.Name, req.Permissions)
	if err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Role updated successfully", role)
}

func (h *RoleHandler) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid role ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		util.ErrorResponse(ctx, util.HTTPStatus(err), err.Error())
		return
	}

	util.SuccessResponse(ctx, "Role deleted successfully", nil)
}
