package admin

import (
	"errors"

	"github.com/affiliate-next/internal/authz"
	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type setAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// AdminView 管理员及其角色
type AdminView struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	IsSuper  bool     `json:"is_super"`
	Roles    []string `json:"roles"`
}

// GetAuthzRoles 角色及策略列表
func (h *Handler) GetAuthzRoles(c *gin.Context) {
	summaries, err := h.AuthzService.ListRoleSummaries()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, summaries)
}

// GetAdmins 管理员列表
func (h *Handler) GetAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	items := make([]AdminView, 0, len(admins))
	for _, admin := range admins {
		roles, err := h.AuthzService.GetAdminRoles(admin.ID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal_error", err)
			return
		}
		items = append(items, AdminView{ID: admin.ID, Username: admin.Username, IsSuper: admin.IsSuper, Roles: roles})
	}
	response.Success(c, items)
}

// SetAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req setAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}
	if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
		if errors.Is(err, authz.ErrRoleNotFound) {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	operatorID := c.GetUint("admin_id")
	requestLog(c).Infow("admin_roles_updated", "operator_admin_id", operatorID, "admin_id", admin.ID, "roles", roles)
	response.Success(c, AdminView{ID: admin.ID, Username: admin.Username, IsSuper: admin.IsSuper, Roles: roles})
}
