package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/hasher"
)

// testBcryptCost keeps hashing fast in tests.
const testBcryptCost = 4

func requireAppError(t *testing.T, err error, code string) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func requireInvalidField(t *testing.T, err error, field, reason string) {
	t.Helper()
	appErr := requireAppError(t, err, apperror.CodeValidation)
	assert.Equal(t, field, appErr.Field())
	assert.Equal(t, reason, appErr.Details["reason"])
}

func hashedUser(t *testing.T, id int64, username, email, password string) *domain.User {
	t.Helper()
	digest, err := hasher.NewBcrypt(testBcryptCost).Hash(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: &digest,
		Name:         "Test",
		LastName:     "User",
	}
}
