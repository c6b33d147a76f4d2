package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/service"
)

var (
	userPayload  = domain.TokenPayload{Type: domain.PayloadUser, UserID: 1, Email: "alice@x.com", Username: "alice"}
	adminPayload = domain.TokenPayload{Type: domain.PayloadAdmin, Email: "root@twitsnap.com", Username: "root"}
)

func newSeededAuthorizationService(t *testing.T, cache *MockAuthorizationCache) *service.AuthorizationService {
	t.Helper()
	enforcer, err := service.NewEnforcer(nil)
	require.NoError(t, err)

	var svc *service.AuthorizationService
	if cache == nil {
		svc = service.NewAuthorizationService(enforcer, nil, logger.Discard())
	} else {
		svc = service.NewAuthorizationService(enforcer, cache, logger.Discard())
	}

	added, err := svc.EnsurePolicies(context.Background(), service.DefaultPolicies)
	require.NoError(t, err)
	require.Equal(t, len(service.DefaultPolicies), added)
	return svc
}

func TestAuthorizationService_CheckAccess_DefaultPolicies(t *testing.T) {
	svc := newSeededAuthorizationService(t, nil)

	tests := []struct {
		name     string
		payload  domain.TokenPayload
		resource string
		action   string
		want     bool
	}{
		{"user edits own profile", userPayload, service.ResourceProfile, service.ActionWrite, true},
		{"user reads users", userPayload, service.ResourceUsers, service.ActionRead, true},
		{"user follows", userPayload, service.ResourceFollows, service.ActionWrite, true},
		{"user cannot block", userPayload, service.ResourceUsers, service.ActionBlock, false},
		{"user cannot create admins", userPayload, service.ResourceAdmins, service.ActionWrite, false},
		{"admin blocks users", adminPayload, service.ResourceUsers, service.ActionBlock, true},
		{"admin creates admins", adminPayload, service.ResourceAdmins, service.ActionWrite, true},
		{"admin reads audit trail", adminPayload, service.ResourceAudit, service.ActionRead, true},
		{"user cannot read audit trail", userPayload, service.ResourceAudit, service.ActionRead, false},
		{"admin has no profile", adminPayload, service.ResourceProfile, service.ActionWrite, false},
		{"admin cannot follow", adminPayload, service.ResourceFollows, service.ActionWrite, false},
		{"reset token has no permissions", domain.NewResetPasswordPayload(1, "a@x.com"), service.ResourceProfile, service.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.CheckAccess(context.Background(), tt.payload, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestAuthorizationService_CheckAccess_Cache(t *testing.T) {
	t.Run("cached decision short-circuits the enforcer", func(t *testing.T) {
		cache := new(MockAuthorizationCache)
		cache.On("InvalidateAll", mock.Anything).Return(nil).Once()
		svc := newSeededAuthorizationService(t, cache)

		// A cached deny wins over the seeded allow.
		cache.On("GetDecision", mock.Anything, "user", service.ResourceProfile, service.ActionRead).
			Return(false, true, nil).Once()

		allowed, err := svc.CheckAccess(context.Background(), userPayload, service.ResourceProfile, service.ActionRead)
		require.NoError(t, err)
		assert.False(t, allowed)
		cache.AssertNotCalled(t, "SetDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss is enforced and stored", func(t *testing.T) {
		cache := new(MockAuthorizationCache)
		cache.On("InvalidateAll", mock.Anything).Return(nil).Once()
		svc := newSeededAuthorizationService(t, cache)

		cache.On("GetDecision", mock.Anything, "admin", service.ResourceUsers, service.ActionBlock).
			Return(false, false, nil).Once()
		cache.On("SetDecision", mock.Anything, "admin", service.ResourceUsers, service.ActionBlock, true, 5*time.Minute).
			Return(nil).Once()

		allowed, err := svc.CheckAccess(context.Background(), adminPayload, service.ResourceUsers, service.ActionBlock)
		require.NoError(t, err)
		assert.True(t, allowed)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors fall back to the enforcer", func(t *testing.T) {
		cache := new(MockAuthorizationCache)
		cache.On("InvalidateAll", mock.Anything).Return(nil).Once()
		svc := newSeededAuthorizationService(t, cache)

		cache.On("GetDecision", mock.Anything, "user", service.ResourceFollows, service.ActionWrite).
			Return(false, false, errors.New("redis down")).Once()
		cache.On("SetDecision", mock.Anything, "user", service.ResourceFollows, service.ActionWrite, true, mock.Anything).
			Return(errors.New("redis down")).Once()

		allowed, err := svc.CheckAccess(context.Background(), userPayload, service.ResourceFollows, service.ActionWrite)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestAuthorizationService_EnsurePolicies_Idempotent(t *testing.T) {
	svc := newSeededAuthorizationService(t, nil)

	added, err := svc.EnsurePolicies(context.Background(), service.DefaultPolicies)
	require.NoError(t, err)
	assert.Zero(t, added)

	added, err = svc.EnsurePolicies(context.Background(), [][]string{
		{service.RoleSubject(domain.PayloadAdmin), service.ResourceProfile, service.ActionRead},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	allowed, err := svc.CheckAccess(context.Background(), adminPayload, service.ResourceProfile, service.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAuthorizationService_ReloadPolicies_InMemory(t *testing.T) {
	cache := new(MockAuthorizationCache)
	cache.On("InvalidateAll", mock.Anything).Return(nil).Once()
	svc := newSeededAuthorizationService(t, cache)

	require.NoError(t, svc.ReloadPolicies(context.Background()))
	cache.AssertNumberOfCalls(t, "InvalidateAll", 1)
}

func BenchmarkAuthorizationService_CheckAccess(b *testing.B) {
	enforcer, err := service.NewEnforcer(nil)
	if err != nil {
		b.Fatal(err)
	}
	svc := service.NewAuthorizationService(enforcer, nil, logger.Discard())
	if _, err := svc.EnsurePolicies(context.Background(), service.DefaultPolicies); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.CheckAccess(ctx, userPayload, service.ResourceFollows, service.ActionWrite); err != nil {
			b.Fatal(err)
		}
	}
}
