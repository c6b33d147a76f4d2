package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// Audit history limits.
// Ограничения истории аудита.
const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AdminHandler handles administrator endpoints.
// AdminHandler обрабатывает эндпоинты администраторов.
type AdminHandler struct {
	admins port.AdminAuthService     // Admin auth / Аутентификация админов
	users  port.UserService          // Account moderation / Модерация аккаунтов
	audit  port.AuditService         // Audit trail / Журнал аудита
	authz  port.AuthorizationService // Policy engine / Движок политик
	logger *logger.Logger            // Logger instance / Экземпляр логгера
}

// NewAdminHandler creates a new AdminHandler instance.
// NewAdminHandler создаёт новый экземпляр AdminHandler.
func NewAdminHandler(
	admins port.AdminAuthService,
	users port.UserService,
	audit port.AuditService,
	authz port.AuthorizationService,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		admins: admins,
		users:  users,
		audit:  audit,
		authz:  authz,
		logger: log.WithComponent("admin_handler"),
	}
}

// Login handles POST /admin/auth/login.
// Login обрабатывает POST /admin/auth/login.
// @Summary Admin login
// @Description Authenticate an administrator by email or username
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} response.APIResponse{data=AdminAuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /admin/auth/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admins.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAdminAuthResponse(result))
}

// Register handles POST /admin/auth/register.
// Register обрабатывает POST /admin/auth/register.
// @Summary Create administrator
// @Description Create another administrator account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.RegisterAdminRequest true "Admin data"
// @Success 201 {object} response.APIResponse{data=AdminAuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /admin/auth/register [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req domain.RegisterAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admins.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAdminAuthResponse(result))
}

// BlockUser handles POST /admin/users/:id/block.
// BlockUser обрабатывает POST /admin/users/:id/block.
// @Summary Block user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.APIResponse{data=MessageResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockUser handles POST /admin/users/:id/unblock.
// UnblockUser обрабатывает POST /admin/users/:id/unblock.
// @Summary Unblock user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.APIResponse{data=MessageResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /admin/users/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	actor, ok := PayloadFrom(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if blocked {
		err = h.users.BlockUser(c.Request.Context(), id, actor)
	} else {
		err = h.users.UnblockUser(c.Request.Context(), id, actor)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	msg := "User unblocked"
	if blocked {
		msg = "User blocked"
	}
	response.Success(c, MessageResponse{Message: msg})
}

// AuditHistory handles GET /admin/audit.
// AuditHistory обрабатывает GET /admin/audit.
// @Summary Actor audit history
// @Description Recent audit entries of one actor, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param actor_type query string true "user, admin or anonymous"
// @Param actor_id query string true "User id or admin username"
// @Param limit query int false "Max entries (max 200)" default(50)
// @Success 200 {object} response.APIResponse{data=[]AuditLogResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /admin/audit [get]
func (h *AdminHandler) AuditHistory(c *gin.Context) {
	actorType := c.Query("actor_type")
	switch actorType {
	case string(domain.PayloadUser), string(domain.PayloadAdmin), "anonymous":
	case "":
		response.Error(c, apperror.InvalidField("actor_type", apperror.ReasonRequired, "actor_type is required"))
		return
	default:
		response.Error(c, apperror.InvalidField("actor_type", apperror.ReasonInvalidValue, "actor_type must be user, admin or anonymous"))
		return
	}

	actorID := c.Query("actor_id")
	if actorID == "" {
		response.Error(c, apperror.InvalidField("actor_id", apperror.ReasonRequired, "actor_id is required"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit < 1 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := h.audit.History(c.Request.Context(), actorType, actorID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuditLogResponses(logs))
}

// ReloadPolicies handles POST /admin/policies/reload.
// ReloadPolicies обрабатывает POST /admin/policies/reload.
// @Summary Reload authorization policies
// @Description Reload policies from storage and drop cached decisions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=MessageResponse}
// @Failure 403 {object} response.APIResponse
// @Router /admin/policies/reload [post]
func (h *AdminHandler) ReloadPolicies(c *gin.Context) {
	if err := h.authz.ReloadPolicies(c.Request.Context()); err != nil {
		h.logger.WithContext(c.Request.Context()).Error("policy reload failed", "error", err)
		response.Error(c, err)
		return
	}

	response.Success(c, MessageResponse{Message: "Policies reloaded"})
}

func toAdminAuthResponse(result *domain.AdminAuthResult) AdminAuthResponse {
	return AdminAuthResponse{
		Admin: AdminResponse{Username: result.Admin.Username, Email: result.Admin.Email},
		Token: result.Token,
	}
}
