package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/middleware"
	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/service"
)

// Handlers groups every HTTP handler of the service.
// Handlers объединяет все HTTP обработчики сервиса.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Admin  *AdminHandler
	Users  *UserHandler
	Follow *FollowHandler
	Gate   *AuthMiddleware

	// AuthLimiter, when set, guards the credential endpoints.
	// AuthLimiter, если задан, защищает эндпоинты с учётными данными.
	AuthLimiter gin.HandlerFunc
}

// RegisterRoutes mounts all routes on router.
// RegisterRoutes монтирует все маршруты на router.
func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)
	router.GET("/health/live", h.Health.Live)
	router.GET("/health/ready", h.Health.Ready)

	RegisterMetrics(router)
	RegisterSwagger(router)

	credentials := []gin.HandlerFunc{middleware.NoCache()}
	if h.AuthLimiter != nil {
		credentials = append(credentials, h.AuthLimiter)
	}

	// Public authentication / Публичная аутентификация
	auth := router.Group("/auth", credentials...)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/sso/register", h.Auth.SSORegister)
	auth.POST("/sso/login", h.Auth.SSOLogin)

	router.Group("/admin/auth", credentials...).POST("/login", h.Admin.Login)

	gate := h.Gate
	isUser := gate.RequireRole(domain.PayloadUser)
	isAdmin := gate.RequireRole(domain.PayloadAdmin)

	// Gated user endpoints / Защищённые эндпоинты пользователей
	users := router.Group("/users", gate.Authenticate())
	users.GET("/me", isUser, gate.RequirePermission(service.ResourceProfile, service.ActionRead), h.Users.GetMe)
	users.PATCH("/me", isUser, gate.RequirePermission(service.ResourceProfile, service.ActionWrite), h.Users.UpdateMe)
	users.GET("", gate.RequirePermission(service.ResourceUsers, service.ActionRead), h.Users.ListUsers)
	users.GET("/:username", gate.RequirePermission(service.ResourceUsers, service.ActionRead), h.Users.GetByUsername)

	users.POST("/:username/follow", isUser, gate.RequirePermission(service.ResourceFollows, service.ActionWrite), h.Follow.Follow)
	users.DELETE("/:username/follow", isUser, gate.RequirePermission(service.ResourceFollows, service.ActionWrite), h.Follow.Unfollow)
	users.GET("/:username/followers", gate.RequirePermission(service.ResourceFollows, service.ActionRead), h.Follow.Followers)
	users.GET("/:username/following", gate.RequirePermission(service.ResourceFollows, service.ActionRead), h.Follow.Following)

	// Administrator endpoints / Эндпоинты администраторов
	admin := router.Group("/admin", gate.Authenticate(), isAdmin)
	admin.POST("/auth/register", gate.RequirePermission(service.ResourceAdmins, service.ActionWrite), h.Admin.Register)
	admin.POST("/users/:id/block", gate.RequirePermission(service.ResourceUsers, service.ActionBlock), h.Admin.BlockUser)
	admin.POST("/users/:id/unblock", gate.RequirePermission(service.ResourceUsers, service.ActionBlock), h.Admin.UnblockUser)
	admin.GET("/audit", gate.RequirePermission(service.ResourceAudit, service.ActionRead), h.Admin.AuditHistory)
	admin.POST("/policies/reload", gate.RequirePermission(service.ResourceAdmins, service.ActionWrite), h.Admin.ReloadPolicies)
}
