package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/service"
)

func TestAccessGate_Authenticate(t *testing.T) {
	tokens := newTokenService(t)
	userToken, err := tokens.Sign(domain.TokenPayload{
		Type: domain.PayloadUser, UserID: 3, Email: "alice@x.com", Username: "alice",
	})
	require.NoError(t, err)
	adminToken, err := tokens.Sign(domain.TokenPayload{
		Type: domain.PayloadAdmin, Username: "root", Email: "root@twitsnap.com",
	})
	require.NoError(t, err)

	otherTokens, err := service.NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)
	forged, err := otherTokens.Sign(domain.TokenPayload{
		Type: domain.PayloadUser, UserID: 3, Email: "alice@x.com", Username: "alice",
	})
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		setupMock     func(*MockUserRepository)
		wantCode      string
		wantType      domain.PayloadType
	}{
		{
			name:          "active user passes",
			authorization: "Bearer " + userToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Username: "alice"}, nil)
			},
			wantType: domain.PayloadUser,
		},
		{
			name:          "scheme is case insensitive",
			authorization: "bearer " + userToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Username: "alice"}, nil)
			},
			wantType: domain.PayloadUser,
		},
		{
			name:          "admin skips the blocked check",
			authorization: "Bearer " + adminToken,
			setupMock:     func(m *MockUserRepository) {},
			wantType:      domain.PayloadAdmin,
		},
		{
			name:          "missing header",
			authorization: "",
			setupMock:     func(m *MockUserRepository) {},
			wantCode:      apperror.CodeUnauthorized,
		},
		{
			name:          "wrong scheme",
			authorization: "Basic " + userToken,
			setupMock:     func(m *MockUserRepository) {},
			wantCode:      apperror.CodeUnauthorized,
		},
		{
			name:          "scheme without token",
			authorization: "Bearer ",
			setupMock:     func(m *MockUserRepository) {},
			wantCode:      apperror.CodeUnauthorized,
		},
		{
			name:          "signed with another secret",
			authorization: "Bearer " + forged,
			setupMock:     func(m *MockUserRepository) {},
			wantCode:      apperror.CodeUnauthorized,
		},
		{
			name:          "tampered token",
			authorization: "Bearer " + userToken + "A",
			setupMock:     func(m *MockUserRepository) {},
			wantCode:      apperror.CodeUnauthorized,
		},
		{
			name:          "blocked user",
			authorization: "Bearer " + userToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, int64(3)).
					Return(&domain.User{ID: 3, Username: "alice", IsBlocked: true}, nil)
			},
			wantCode: apperror.CodeBlocked,
		},
		{
			name:          "missing account counts as blocked",
			authorization: "Bearer " + userToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, int64(3)).Return(nil, apperror.NotFound("User", 3))
			},
			wantCode: apperror.CodeBlocked,
		},
		{
			name:          "store failure propagates",
			authorization: "Bearer " + userToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, int64(3)).
					Return(nil, apperror.ServiceUnavailable("database unavailable"))
			},
			wantCode: apperror.CodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			gate := service.NewAccessGate(tokens, users, logger.Discard())

			payload, err := gate.Authenticate(context.Background(), tt.authorization)

			if tt.wantCode != "" {
				assert.Nil(t, payload)
				requireAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, payload.Type)
			users.AssertExpectations(t)
		})
	}
}

func TestAccessGate_DecodeToken_DoesNotTouchStore(t *testing.T) {
	tokens := newTokenService(t)
	token, err := tokens.Sign(domain.TokenPayload{
		Type: domain.PayloadUser, UserID: 8, Email: "h@x.com", Username: "h",
	})
	require.NoError(t, err)

	users := new(MockUserRepository)
	gate := service.NewAccessGate(tokens, users, logger.Discard())

	payload, err := gate.DecodeToken(context.Background(), "  Bearer   "+token+"  ")
	require.NoError(t, err)
	assert.Equal(t, int64(8), payload.UserID)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	_, err = gate.DecodeToken(context.Background(), strings.Repeat("x", 10))
	requireAppError(t, err, apperror.CodeUnauthorized)
}
