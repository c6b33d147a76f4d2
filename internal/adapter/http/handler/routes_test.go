package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/service"
	"github.com/Twit-Snap/users-service/test/mocks"
)

type routeMocks struct {
	gate  *mocks.MockAccessGate
	authz *mocks.MockAuthorizationService
	users *mocks.MockUserService
}

func setupRouter(t *testing.T, limiter gin.HandlerFunc) (routeMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := routeMocks{
		gate:  mocks.NewMockAccessGate(ctrl),
		authz: mocks.NewMockAuthorizationService(ctrl),
		users: mocks.NewMockUserService(ctrl),
	}

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Health: NewHealthHandler(nil, nil),
		Auth:   NewAuthHandler(mocks.NewMockUserAuthService(ctrl), mocks.NewMockSSOAuthService(ctrl), testLog),
		Admin: NewAdminHandler(mocks.NewMockAdminAuthService(ctrl), m.users,
			mocks.NewMockAuditService(ctrl), m.authz, testLog),
		Users:       NewUserHandler(m.users, testLog),
		Follow:      NewFollowHandler(mocks.NewMockFollowService(ctrl), testLog),
		Gate:        NewAuthMiddleware(m.gate, m.authz, testLog),
		AuthLimiter: limiter,
	})
	return m, router
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	_, router := setupRouter(t, nil)

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/metrics"} {
		w := perform(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRoutes_GatedEndpointsRequireToken(t *testing.T) {
	m, router := setupRouter(t, nil)
	m.gate.EXPECT().Authenticate(gomock.Any(), "").Return(nil, apperror.Unauthorized("invalid token")).Times(3)

	for _, path := range []string{"/users/me", "/users/jack/followers", "/admin/audit"} {
		w := perform(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRoutes_AdminGroupRejectsUsers(t *testing.T) {
	m, router := setupRouter(t, nil)
	p := userPayload
	m.gate.EXPECT().Authenticate(gomock.Any(), "Bearer user").Return(&p, nil)

	w := perform(t, router, http.MethodPost, "/admin/users/5/block", "", "Authorization", "Bearer user")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_AdminBlocksUser(t *testing.T) {
	m, router := setupRouter(t, nil)
	p := adminPayload
	m.gate.EXPECT().Authenticate(gomock.Any(), "Bearer admin").Return(&p, nil)
	m.authz.EXPECT().CheckAccess(gomock.Any(), adminPayload, service.ResourceUsers, service.ActionBlock).Return(true, nil)
	m.users.EXPECT().BlockUser(gomock.Any(), int64(5), adminPayload).Return(nil)

	w := perform(t, router, http.MethodPost, "/admin/users/5/block", "", "Authorization", "Bearer admin")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_ProfileIsUserOnly(t *testing.T) {
	m, router := setupRouter(t, nil)
	p := adminPayload
	m.gate.EXPECT().Authenticate(gomock.Any(), "Bearer admin").Return(&p, nil)

	w := perform(t, router, http.MethodGet, "/users/me", "", "Authorization", "Bearer admin")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_CredentialEndpointsUseLimiter(t *testing.T) {
	limited := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	_, router := setupRouter(t, limited)

	for _, path := range []string{"/auth/login", "/auth/register", "/auth/sso/login", "/admin/auth/login"} {
		w := perform(t, router, http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, path)
	}
}
