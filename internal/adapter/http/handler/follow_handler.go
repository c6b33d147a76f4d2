package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// FollowHandler handles the follow graph.
// FollowHandler обрабатывает граф подписок.
type FollowHandler struct {
	follows port.FollowService
	logger  *logger.Logger
}

// NewFollowHandler creates a new FollowHandler instance.
// NewFollowHandler создаёт новый экземпляр FollowHandler.
func NewFollowHandler(follows port.FollowService, log *logger.Logger) *FollowHandler {
	return &FollowHandler{
		follows: follows,
		logger:  log.WithComponent("follow_handler"),
	}
}

// Follow handles POST /users/:username/follow.
// Follow обрабатывает POST /users/:username/follow.
// @Summary Follow user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username to follow"
// @Success 201 {object} response.APIResponse{data=FollowResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /users/{username}/follow [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	payload, ok := PayloadFrom(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	follow, err := h.follows.Follow(c.Request.Context(), payload, c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, FollowResponse{
		FollowerID: follow.FollowerID,
		FollowedID: follow.FollowedID,
		CreatedAt:  follow.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Unfollow handles DELETE /users/:username/follow.
// Unfollow обрабатывает DELETE /users/:username/follow.
// @Summary Unfollow user
// @Tags follows
// @Security BearerAuth
// @Param username path string true "Username to unfollow"
// @Success 204
// @Failure 404 {object} response.APIResponse
// @Router /users/{username}/follow [delete]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	payload, ok := PayloadFrom(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), payload, c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Followers handles GET /users/:username/followers.
// Followers обрабатывает GET /users/:username/followers.
// @Summary List followers
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 100)" default(20)
// @Success 200 {object} response.APIResponse{data=[]UserResponse,meta=response.Meta}
// @Failure 404 {object} response.APIResponse
// @Router /users/{username}/followers [get]
func (h *FollowHandler) Followers(c *gin.Context) {
	page := pageFromQuery(c)
	users, total, err := h.follows.ListFollowers(c.Request.Context(), c.Param("username"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, toUserResponses(users), response.NewMeta(page.Page, page.PageSize, total))
}

// Following handles GET /users/:username/following.
// Following обрабатывает GET /users/:username/following.
// @Summary List followed users
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 100)" default(20)
// @Success 200 {object} response.APIResponse{data=[]UserResponse,meta=response.Meta}
// @Failure 404 {object} response.APIResponse
// @Router /users/{username}/following [get]
func (h *FollowHandler) Following(c *gin.Context) {
	page := pageFromQuery(c)
	users, total, err := h.follows.ListFollowing(c.Request.Context(), c.Param("username"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, toUserResponses(users), response.NewMeta(page.Page, page.PageSize, total))
}
