package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/port"
	"github.com/Twit-Snap/users-service/test/mocks"
)

func setupUserTest(t *testing.T, payload domain.TokenPayload) (*mocks.MockUserService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserService(ctrl)
	h := NewUserHandler(users, testLog)

	router := gin.New()
	group := router.Group("/users", withPayload(payload))
	group.GET("/me", h.GetMe)
	group.PATCH("/me", h.UpdateMe)
	group.GET("", h.ListUsers)
	group.GET("/:username", h.GetByUsername)

	return users, router
}

func TestUserHandler_GetMe(t *testing.T) {
	users, router := setupUserTest(t, userPayload)
	users.EXPECT().GetUser(gomock.Any(), int64(7)).Return(sampleUser(7, "jane"), nil)

	w := perform(t, router, http.MethodGet, "/users/me", "")

	require.Equal(t, http.StatusOK, w.Code)
	var data UserResponse
	decodeData(t, w, &data)
	assert.Equal(t, int64(7), data.ID)
	assert.Equal(t, "Doe", data.LastName)
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestUserHandler_UpdateMe(t *testing.T) {
	t.Run("passes only the present fields", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		users.EXPECT().
			UpdateProfile(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
				require.NotNil(t, req.Bio)
				assert.Equal(t, "hello", *req.Bio)
				assert.Nil(t, req.Name)
				user := sampleUser(7, "jane")
				user.Bio = *req.Bio
				return user, nil
			})

		w := perform(t, router, http.MethodPatch, "/users/me", `{"bio":"hello"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var data UserResponse
		decodeData(t, w, &data)
		assert.Equal(t, "hello", data.Bio)
	})

	t.Run("rejects markup before reaching the service", func(t *testing.T) {
		_, router := setupUserTest(t, userPayload)

		w := perform(t, router, http.MethodPatch, "/users/me", `{"name":"<b>Jane</b>"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, apperror.CodeValidation, resp.Error.Code)
		assert.Equal(t, "HTML tags are not allowed", resp.Error.Details["name"])
	})

	t.Run("rejects non http photo", func(t *testing.T) {
		_, router := setupUserTest(t, userPayload)

		w := perform(t, router, http.MethodPatch, "/users/me", `{"profilePhoto":"javascript:alert(1)"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w).Error.Details, "profilePhoto")
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("users only see active accounts", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		users.EXPECT().
			ListUsers(gomock.Any(), port.UserFilter{Status: "active", Search: "ja", Page: 2, PageSize: 5}).
			Return([]domain.User{*sampleUser(1, "jane"), *sampleUser(2, "jack")}, int64(7), nil)

		w := perform(t, router, http.MethodGet, "/users?search=ja&status=blocked&page=2&page_size=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 5, resp.Meta.PageSize)
		assert.Equal(t, int64(7), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)

		var data []UserResponse
		decodeData(t, w, &data)
		assert.Len(t, data, 2)
	})

	t.Run("admins may filter by status", func(t *testing.T) {
		users, router := setupUserTest(t, adminPayload)
		users.EXPECT().
			ListUsers(gomock.Any(), port.UserFilter{Status: "blocked", Page: 1, PageSize: defaultPageSize}).
			Return(nil, int64(0), nil)

		w := perform(t, router, http.MethodGet, "/users?status=blocked", "")

		require.Equal(t, http.StatusOK, w.Code)
		var data []UserResponse
		decodeData(t, w, &data)
		assert.Empty(t, data)
	})

	t.Run("page size is capped", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		users.EXPECT().
			ListUsers(gomock.Any(), port.UserFilter{Status: "active", Page: 1, PageSize: maxPageSize}).
			Return(nil, int64(0), nil)

		w := perform(t, router, http.MethodGet, "/users?page=-3&page_size=1000", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_GetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		users.EXPECT().GetByUsername(gomock.Any(), "jack").Return(sampleUser(2, "jack"), nil)

		w := perform(t, router, http.MethodGet, "/users/jack", "")

		require.Equal(t, http.StatusOK, w.Code)
		var data UserResponse
		decodeData(t, w, &data)
		assert.Equal(t, "jack", data.Username)
	})

	t.Run("sso account without birthdate", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		sso := sampleUser(3, "erin")
		sso.Birthdate = nil
		sso.PasswordHash = nil
		users.EXPECT().GetByUsername(gomock.Any(), "erin").Return(sso, nil)

		w := perform(t, router, http.MethodGet, "/users/erin", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "birthdate")
		assert.NotContains(t, w.Body.String(), "0001-01-01")
	})

	t.Run("unknown username", func(t *testing.T) {
		users, router := setupUserTest(t, userPayload)
		users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, apperror.NotFound("User", "ghost"))

		w := perform(t, router, http.MethodGet, "/users/ghost", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decode(t, w).Error.Message)
	})
}
