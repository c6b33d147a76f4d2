// Package handler provides HTTP request handlers for the users service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса пользователей.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// AuthHandler handles password and SSO authentication of end users.
// AuthHandler обрабатывает аутентификацию пользователей по паролю и через SSO.
type AuthHandler struct {
	users  port.UserAuthService // Password auth / Аутентификация по паролю
	sso    port.SSOAuthService  // SSO auth / Аутентификация через SSO
	logger *logger.Logger       // Logger instance / Экземпляр логгера
}

// NewAuthHandler creates a new AuthHandler instance.
// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(users port.UserAuthService, sso port.SSOAuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		sso:    sso,
		logger: log.WithComponent("auth_handler"),
	}
}

// Register handles POST /auth/register.
// Register обрабатывает POST /auth/register.
// @Summary Register with password
// @Description Create an account and return it with a signed token. Fields are validated in order email, password, username, name, lastname, birthdate.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterUserRequest true "Registration data"
// @Success 201 {object} response.APIResponse{data=AuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAuthResponse(result))
}

// Login handles POST /auth/login.
// Login обрабатывает POST /auth/login.
// @Summary Login with password
// @Description Authenticate by email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} response.APIResponse{data=AuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthResponse(result))
}

// SSORegister handles POST /auth/sso/register.
// SSORegister обрабатывает POST /auth/sso/register.
// @Summary Register with an identity provider
// @Description Verify the provider assertion and create a passwordless account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.SSORegisterRequest true "Assertion and profile"
// @Success 201 {object} response.APIResponse{data=AuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /auth/sso/register [post]
func (h *AuthHandler) SSORegister(c *gin.Context) {
	var req domain.SSORegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.sso.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAuthResponse(result))
}

// SSOLogin handles POST /auth/sso/login.
// SSOLogin обрабатывает POST /auth/sso/login.
// @Summary Login with an identity provider
// @Description Verify the provider assertion and sign in the linked account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.SSOLoginRequest true "Assertion"
// @Success 200 {object} response.APIResponse{data=AuthResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/sso/login [post]
func (h *AuthHandler) SSOLogin(c *gin.Context) {
	var req domain.SSOLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.sso.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthResponse(result))
}
