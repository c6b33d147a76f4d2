package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// UserHandler handles user profile and lookup requests.
// UserHandler обрабатывает запросы профиля и поиска пользователей.
type UserHandler struct {
	users  port.UserService // User service / Сервис пользователей
	logger *logger.Logger   // Logger instance / Экземпляр логгера
}

// NewUserHandler creates a new UserHandler instance.
// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(users port.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: log.WithComponent("user_handler"),
	}
}

// GetMe handles GET /users/me.
// GetMe обрабатывает GET /users/me.
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=UserResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	payload, ok := PayloadFrom(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), payload.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(user))
}

// UpdateMe handles PATCH /users/me.
// UpdateMe обрабатывает PATCH /users/me.
// @Summary Update own profile
// @Description Only the fields present in the body change
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.APIResponse{data=UserResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	payload, ok := PayloadFrom(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req domain.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), payload.UserID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(user))
}

// ListUsers handles GET /users.
// ListUsers обрабатывает GET /users.
// @Summary Search users
// @Description Prefix search on username, name and last name. Only administrators may list blocked accounts.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Username, name or last name prefix"
// @Param status query string false "active, blocked or all (admins only)" default(active)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 100)" default(20)
// @Success 200 {object} response.APIResponse{data=[]UserResponse,meta=response.Meta}
// @Failure 401 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	payload, _ := PayloadFrom(c)

	status := "active"
	if payload.IsAdmin() {
		status = c.DefaultQuery("status", "all")
	}

	page := pageFromQuery(c)
	filter := port.UserFilter{
		Status:   status,
		Search:   c.Query("search"),
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, toUserResponses(users), response.NewMeta(page.Page, page.PageSize, total))
}

// GetByUsername handles GET /users/:username.
// GetByUsername обрабатывает GET /users/:username.
// @Summary Get user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} response.APIResponse{data=UserResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(user))
}
