package service_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
	"github.com/Twit-Snap/users-service/internal/service"
)

func newSSOService(t *testing.T) (*service.SSOAuthService, *MockUserRepository, *MockIdentityVerifier, *service.TokenService) {
	t.Helper()
	users := new(MockUserRepository)
	verifier := new(MockIdentityVerifier)
	tokens := newTokenService(t)
	svc := service.NewSSOAuthService(users, verifier, tokens, nil, "google.com", logger.Discard())
	return svc, users, verifier, tokens
}

func TestSSOAuthService_Login(t *testing.T) {
	linked := &domain.User{ID: 5, Username: "carol", Email: "carol@gmail.com", SSOUID: strPtr("uid-carol")}

	tests := []struct {
		name      string
		req       *domain.SSOLoginRequest
		setupMock func(*MockUserRepository, *MockIdentityVerifier)
		wantCode  string
		wantMsg   string
	}{
		{
			name: "linked account signs in",
			req:  &domain.SSOLoginRequest{Token: "id-token", UID: "uid-carol"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "id-token").
					Return(&port.SSOClaims{Subject: "uid-carol", Email: "carol@gmail.com"}, nil)
				users.On("FindBySSOUID", mock.Anything, "uid-carol").Return(linked, nil)
			},
		},
		{
			name: "no linked account",
			req:  &domain.SSOLoginRequest{Token: "id-token", UID: "uid-new"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "id-token").
					Return(&port.SSOClaims{Subject: "uid-new"}, nil)
				users.On("FindBySSOUID", mock.Anything, "uid-new").
					Return(nil, apperror.NotFound("User", "uid-new"))
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "no account is linked to these SSO credentials",
		},
		{
			name: "subject does not match uid",
			req:  &domain.SSOLoginRequest{Token: "id-token", UID: "uid-someone-else"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "id-token").
					Return(&port.SSOClaims{Subject: "uid-carol"}, nil)
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid SSO credentials",
		},
		{
			name: "provider rejects assertion",
			req:  &domain.SSOLoginRequest{Token: "expired", UID: "uid-carol"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "expired").
					Return(nil, fmt.Errorf("token expired: %w", port.ErrAssertionRejected))
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid SSO credentials",
		},
		{
			name: "provider unreachable",
			req:  &domain.SSOLoginRequest{Token: "id-token", UID: "uid-carol"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "id-token").
					Return(nil, errors.New("fetching keys: connection refused"))
			},
			wantCode: apperror.CodeUnauthorized,
			wantMsg:  "invalid SSO credentials",
		},
		{
			name: "store failure propagates",
			req:  &domain.SSOLoginRequest{Token: "id-token", UID: "uid-carol"},
			setupMock: func(users *MockUserRepository, v *MockIdentityVerifier) {
				v.On("VerifyAssertion", mock.Anything, "id-token").
					Return(&port.SSOClaims{Subject: "uid-carol"}, nil)
				users.On("FindBySSOUID", mock.Anything, "uid-carol").
					Return(nil, apperror.ServiceUnavailable("database unavailable"))
			},
			wantCode: apperror.CodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, verifier, tokens := newSSOService(t)
			tt.setupMock(users, verifier)

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != "" {
				assert.Nil(t, result)
				appErr := requireAppError(t, err, tt.wantCode)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, appErr.Message)
				}
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			payload, err := tokens.Verify(result.Token)
			require.NoError(t, err)
			assert.Equal(t, int64(5), payload.UserID)
			assert.Equal(t, "carol", payload.Username)
		})
	}
}

func TestSSOAuthService_Register_MergesClaims(t *testing.T) {
	svc, users, verifier, tokens := newSSOService(t)
	verifier.On("VerifyAssertion", mock.Anything, "id-token").Return(&port.SSOClaims{
		Subject:       "uid-dave",
		ProviderID:    "github.com",
		Email:         "dave@gmail.com",
		EmailVerified: true,
		GivenName:     "David",
		FamilyName:    "Jones",
		Picture:       "https://lh3.googleusercontent.com/dave.png",
	}, nil).Once()

	var created *domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
			created.ID = 11
		}).Return(nil).Once()

	result, err := svc.Register(context.Background(), &domain.SSORegisterRequest{
		Token:        "id-token",
		UID:          "uid-dave",
		Email:        "dave@gmail.com",
		Name:         "Dave",
		LastName:     strPtr("Ignored"),
		Username:     strPtr("davej"),
		Birthdate:    strPtr("1990-05-01"),
		ProfilePhoto: strPtr("https://example.com/mine.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "davej", created.Username)
	assert.Equal(t, "David", created.Name)
	assert.Equal(t, "Jones", created.LastName)
	assert.Equal(t, "https://lh3.googleusercontent.com/dave.png", *created.ProfilePhoto)
	assert.Equal(t, "uid-dave", *created.SSOUID)
	assert.Equal(t, "github.com", *created.ProviderID)
	assert.True(t, created.Verified)
	assert.Nil(t, created.PasswordHash)
	require.NotNil(t, created.Birthdate)
	assert.Equal(t, 1990, created.Birthdate.Year())

	payload, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), payload.UserID)
	assert.True(t, payload.Verified)
}

func TestSSOAuthService_Register_FallsBackToRequest(t *testing.T) {
	svc, users, verifier, _ := newSSOService(t)
	verifier.On("VerifyAssertion", mock.Anything, "id-token").
		Return(&port.SSOClaims{Subject: "uid-erin"}, nil).Once()

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Erin" &&
			u.LastName == "Smith" &&
			*u.ProviderID == "google.com" &&
			u.ProfilePhoto != nil && *u.ProfilePhoto == "https://example.com/erin.png" &&
			strings.HasPrefix(u.Username, "erin.smith_") &&
			u.Birthdate == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 12
	}).Return(nil).Once()

	result, err := svc.Register(context.Background(), &domain.SSORegisterRequest{
		Token:        "id-token",
		Email:        "Erin.Smith@gmail.com",
		Name:         "Erin",
		LastName:     strPtr("Smith"),
		ProfilePhoto: strPtr("https://example.com/erin.png"),
	})
	require.NoError(t, err)
	assert.Nil(t, result.User.Birthdate)
	assert.Nil(t, result.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestSSOAuthService_Register_Rejections(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		svc, _, verifier, _ := newSSOService(t)
		_, err := svc.Register(context.Background(), &domain.SSORegisterRequest{Email: "a@b.c", Name: "A"})
		requireInvalidField(t, err, "token", apperror.ReasonRequired)
		verifier.AssertNotCalled(t, "VerifyAssertion", mock.Anything, mock.Anything)
	})

	t.Run("bad username", func(t *testing.T) {
		svc, _, _, _ := newSSOService(t)
		_, err := svc.Register(context.Background(), &domain.SSORegisterRequest{
			Token: "t", Email: "a@b.c", Name: "A", Username: strPtr("no spaces allowed"),
		})
		requireInvalidField(t, err, "username", apperror.ReasonInvalidFormat)
	})

	t.Run("uid differs from subject", func(t *testing.T) {
		svc, users, verifier, _ := newSSOService(t)
		verifier.On("VerifyAssertion", mock.Anything, "t").Return(&port.SSOClaims{Subject: "uid-real"}, nil)

		_, err := svc.Register(context.Background(), &domain.SSORegisterRequest{
			Token: "t", UID: "uid-forged", Email: "a@b.c", Name: "A",
		})
		requireAppError(t, err, apperror.CodeUnauthorized)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("subject already linked", func(t *testing.T) {
		svc, users, verifier, _ := newSSOService(t)
		verifier.On("VerifyAssertion", mock.Anything, "t").Return(&port.SSOClaims{Subject: "uid-1"}, nil)
		users.On("Create", mock.Anything, mock.Anything).
			Return(apperror.AlreadyExists("SSO account", "")).Once()

		_, err := svc.Register(context.Background(), &domain.SSORegisterRequest{Token: "t", Email: "a@b.c", Name: "A"})
		appErr := requireAppError(t, err, apperror.CodeAlreadyExists)
		assert.Equal(t, "SSO account", appErr.Entity())
	})
}

func TestGenerateUsername(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9_.]+_[0-9a-f]{6}$`)

	tests := []struct {
		email    string
		wantBase string
	}{
		{"Jane.Doe+tag@gmail.com", "jane.doetag"},
		{"@nolocal.com", "user"},
		{"ÄÖÜ@x.com", "user"},
		{strings.Repeat("a", 60) + "@x.com", strings.Repeat("a", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := service.GenerateUsername(tt.email)
			assert.Regexp(t, pattern, got)
			assert.True(t, strings.HasPrefix(got, tt.wantBase+"_"), got)
			assert.Len(t, got, len(tt.wantBase)+7)
		})
	}

	assert.NotEqual(t, service.GenerateUsername("x@y.z"), service.GenerateUsername("x@y.z"))
}
