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
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/hasher"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
	"github.com/Twit-Snap/users-service/internal/service"
)

type userAuthDeps struct {
	users    *MockUserRepository
	audit    *MockAuditService
	attempts *MockRateLimitCache
	tokens   *service.TokenService
}

func newUserAuthService(t *testing.T, lockout service.LockoutPolicy) (*service.UserAuthService, userAuthDeps) {
	t.Helper()
	return newUserAuthServiceWithHasher(t, lockout, hasher.NewBcrypt(testBcryptCost))
}

func newUserAuthServiceWithHasher(t *testing.T, lockout service.LockoutPolicy, passwords port.PasswordHasher) (*service.UserAuthService, userAuthDeps) {
	t.Helper()
	deps := userAuthDeps{
		users:    new(MockUserRepository),
		audit:    new(MockAuditService),
		attempts: new(MockRateLimitCache),
		tokens:   newTokenService(t),
	}
	deps.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := service.NewUserAuthService(
		deps.users,
		passwords,
		deps.tokens,
		deps.audit,
		deps.attempts,
		lockout,
		logger.Discard(),
	)
	return svc, deps
}

func validRegistration() *domain.RegisterUserRequest {
	return &domain.RegisterUserRequest{
		Email:     "alice@x.com",
		Password:  "Secret#1",
		Username:  "alice",
		Name:      "Alice",
		LastName:  "Liddell",
		Birthdate: "2000-01-31",
	}
}

func TestUserAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.RegisterUserRequest)
		field  string
		reason string
	}{
		{
			name:   "missing email",
			mutate: func(r *domain.RegisterUserRequest) { r.Email = "  " },
			field:  "email",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "email without at sign",
			mutate: func(r *domain.RegisterUserRequest) { r.Email = "alice.x.com" },
			field:  "email",
			reason: apperror.ReasonInvalidFormat,
		},
		{
			name:   "missing password",
			mutate: func(r *domain.RegisterUserRequest) { r.Password = "" },
			field:  "password",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "missing username",
			mutate: func(r *domain.RegisterUserRequest) { r.Username = "" },
			field:  "username",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "username with spaces",
			mutate: func(r *domain.RegisterUserRequest) { r.Username = "alice smith" },
			field:  "username",
			reason: apperror.ReasonInvalidFormat,
		},
		{
			name:   "missing name",
			mutate: func(r *domain.RegisterUserRequest) { r.Name = "" },
			field:  "name",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "missing lastname",
			mutate: func(r *domain.RegisterUserRequest) { r.LastName = "" },
			field:  "lastname",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "missing birthdate",
			mutate: func(r *domain.RegisterUserRequest) { r.Birthdate = "" },
			field:  "birthdate",
			reason: apperror.ReasonRequired,
		},
		{
			name:   "malformed birthdate",
			mutate: func(r *domain.RegisterUserRequest) { r.Birthdate = "31/01/2000" },
			field:  "birthdate",
			reason: apperror.ReasonInvalidFormat,
		},
		{
			name:   "future birthdate",
			mutate: func(r *domain.RegisterUserRequest) { r.Birthdate = time.Now().AddDate(1, 0, 0).Format(domain.BirthdateLayout) },
			field:  "birthdate",
			reason: apperror.ReasonInvalidFormat,
		},
		{
			name:   "profile photo is not a url",
			mutate: func(r *domain.RegisterUserRequest) { r.ProfilePhoto = strPtr("not a url") },
			field:  "profilePhoto",
			reason: apperror.ReasonInvalidFormat,
		},
		{
			name:   "first failing field wins",
			mutate: func(r *domain.RegisterUserRequest) { r.Email = ""; r.Password = ""; r.Name = "" },
			field:  "email",
			reason: apperror.ReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passwords := new(MockPasswordHasher)
			svc, deps := newUserAuthServiceWithHasher(t, service.LockoutPolicy{}, passwords)
			req := validRegistration()
			tt.mutate(req)

			result, err := svc.Register(context.Background(), req)

			assert.Nil(t, result)
			requireInvalidField(t, err, tt.field, tt.reason)
			passwords.AssertNotCalled(t, "Hash", mock.Anything)
			deps.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			deps.users.AssertNotCalled(t, "FindByEmailOrUsername", mock.Anything, mock.Anything)
		})
	}
}

func TestUserAuthService_RegisterThenLogin(t *testing.T) {
	svc, deps := newUserAuthService(t, service.LockoutPolicy{})
	ctx := context.Background()

	var stored *domain.User
	deps.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = 1
			hash := *u.PasswordHash
			copied := *u
			copied.PasswordHash = &hash
			stored = &copied
		}).
		Return(nil).Once()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.User.ID)
	assert.Equal(t, "alice", registered.User.Username)
	assert.Nil(t, registered.User.PasswordHash, "password hash must not leave the service")
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secret#1", *stored.PasswordHash)

	payload, err := deps.tokens.Verify(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.PayloadUser, payload.Type)
	assert.Equal(t, int64(1), payload.UserID)
	assert.Equal(t, "alice", payload.Username)

	deps.users.On("FindByEmailOrUsername", mock.Anything, "alice@x.com").Return(stored, nil).Once()
	deps.attempts.On("Reset", mock.Anything, "login:alice@x.com").Return(nil).Once()

	loggedIn, err := svc.Login(ctx, "alice@x.com", "Secret#1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loggedIn.User.ID)
	assert.Nil(t, loggedIn.User.PasswordHash)

	loginPayload, err := deps.tokens.Verify(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loginPayload.UserID)

	deps.users.AssertExpectations(t)
	deps.attempts.AssertExpectations(t)
	deps.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e port.AuditEntry) bool {
		return e.Action == domain.AuditActionRegister && e.ActorID == "1"
	}))
	deps.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e port.AuditEntry) bool {
		return e.Action == domain.AuditActionLoginSuccess && e.ActorID == "1"
	}))
}

func TestUserAuthService_Register_DuplicatePassesThrough(t *testing.T) {
	svc, deps := newUserAuthService(t, service.LockoutPolicy{})
	deps.users.On("Create", mock.Anything, mock.Anything).
		Return(apperror.AlreadyExists("Email", "email already registered")).Once()

	result, err := svc.Register(context.Background(), validRegistration())

	assert.Nil(t, result)
	appErr := requireAppError(t, err, apperror.CodeAlreadyExists)
	assert.Equal(t, "Email", appErr.Entity())
	deps.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestUserAuthService_Register_BlankOptionalsAreDropped(t *testing.T) {
	svc, deps := newUserAuthService(t, service.LockoutPolicy{})
	req := validRegistration()
	req.PhoneNumber = strPtr("   ")
	req.ProfilePhoto = strPtr("")
	req.BackgroundPhoto = strPtr(" https://cdn.x.com/bg.png ")

	deps.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.PhoneNumber == nil && u.ProfilePhoto == nil &&
			u.BackgroundPhoto != nil && *u.BackgroundPhoto == "https://cdn.x.com/bg.png"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 9
	}).Return(nil).Once()

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	deps.users.AssertExpectations(t)
}

func TestUserAuthService_Login_Failures(t *testing.T) {
	alice := hashedUser(t, 1, "alice", "alice@x.com", "Secret#1")
	ssoOnly := &domain.User{ID: 2, Username: "bob", Email: "bob@x.com"}

	tests := []struct {
		name       string
		identifier string
		password   string
		setupMock  func(users *MockUserRepository)
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "unknown identifier",
			identifier: "ghost",
			password:   "whatever",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmailOrUsername", mock.Anything, "ghost").
					Return(nil, apperror.NotFound("User", "ghost"))
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name:       "wrong password",
			identifier: "alice",
			password:   "wrong",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmailOrUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name:       "account without password",
			identifier: "bob",
			password:   "anything",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmailOrUsername", mock.Anything, "bob").Return(ssoOnly, nil)
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name:       "store failure propagates",
			identifier: "alice",
			password:   "Secret#1",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmailOrUsername", mock.Anything, "alice").
					Return(nil, apperror.ServiceUnavailable("database unavailable"))
			},
			wantCode: apperror.CodeServiceUnavailable,
			wantMsg:  "database unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newUserAuthService(t, service.LockoutPolicy{})
			tt.setupMock(deps.users)

			result, err := svc.Login(context.Background(), tt.identifier, tt.password)

			assert.Nil(t, result)
			appErr := requireAppError(t, err, tt.wantCode)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestUserAuthService_Login_FailureIsAudited(t *testing.T) {
	svc, deps := newUserAuthService(t, service.LockoutPolicy{})
	deps.users.On("FindByEmailOrUsername", mock.Anything, "ghost").
		Return(nil, apperror.NotFound("User", "ghost"))

	_, err := svc.Login(context.Background(), "ghost", "pw")
	require.Error(t, err)

	deps.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e port.AuditEntry) bool {
		return e.Action == domain.AuditActionLoginFailed &&
			e.ActorType == service.ActorAnonymous &&
			e.ResourceID == "ghost"
	}))
}

func TestUserAuthService_Login_AuditFailureDoesNotFailLogin(t *testing.T) {
	users := new(MockUserRepository)
	audit := new(MockAuditService)
	audit.On("Record", mock.Anything, mock.Anything).Return(errors.New("audit store down"))
	users.On("FindByEmailOrUsername", mock.Anything, "alice").
		Return(hashedUser(t, 1, "alice", "alice@x.com", "Secret#1"), nil)

	svc := service.NewUserAuthService(users, hasher.NewBcrypt(testBcryptCost), newTokenService(t),
		audit, nil, service.LockoutPolicy{}, logger.Discard())

	result, err := svc.Login(context.Background(), "alice", "Secret#1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestUserAuthService_Login_Lockout(t *testing.T) {
	policy := service.LockoutPolicy{MaxAttempts: 3, Window: 15 * time.Minute}

	t.Run("failure increments the counter", func(t *testing.T) {
		svc, deps := newUserAuthService(t, policy)
		deps.attempts.On("GetCount", mock.Anything, "login:alice").Return(int64(0), nil).Once()
		deps.users.On("FindByEmailOrUsername", mock.Anything, "Alice").
			Return(hashedUser(t, 1, "alice", "alice@x.com", "Secret#1"), nil).Once()
		deps.attempts.On("Increment", mock.Anything, "login:alice", 15*time.Minute).Return(int64(1), nil).Once()

		_, err := svc.Login(context.Background(), "Alice", "wrong")
		requireAppError(t, err, apperror.CodeUnauthorized)
		deps.attempts.AssertExpectations(t)
	})

	t.Run("locked identifier is rejected before lookup", func(t *testing.T) {
		svc, deps := newUserAuthService(t, policy)
		deps.attempts.On("GetCount", mock.Anything, "login:alice").Return(int64(3), nil).Once()
		deps.attempts.On("TTL", mock.Anything, "login:alice").Return(90*time.Second, nil).Once()

		result, err := svc.Login(context.Background(), "alice", "Secret#1")

		assert.Nil(t, result)
		appErr := requireAppError(t, err, apperror.CodeTooManyRequests)
		assert.Equal(t, 90, appErr.Details["retry_after_seconds"])
		deps.users.AssertNotCalled(t, "FindByEmailOrUsername", mock.Anything, mock.Anything)
	})

	t.Run("counter errors do not block login", func(t *testing.T) {
		svc, deps := newUserAuthService(t, policy)
		deps.attempts.On("GetCount", mock.Anything, "login:alice").Return(int64(0), errors.New("redis down")).Once()
		deps.attempts.On("Reset", mock.Anything, "login:alice").Return(errors.New("redis down")).Once()
		deps.users.On("FindByEmailOrUsername", mock.Anything, "alice").
			Return(hashedUser(t, 1, "alice", "alice@x.com", "Secret#1"), nil).Once()

		result, err := svc.Login(context.Background(), "alice", "Secret#1")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})
}
