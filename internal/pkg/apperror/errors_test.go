package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			err:      &AppError{Code: CodeNotFound, Message: "User not found"},
			expected: "NOT_FOUND: User not found",
		},
		{
			name: "with wrapped error",
			err: &AppError{
				Code:    CodeInternal,
				Message: "database error",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: database error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := Internal("wrapped", cause)

	assert.Equal(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))
}

func TestAppError_WithDetails_Merges(t *testing.T) {
	appErr := InvalidField("email", ReasonInvalidFormat, "email must contain @")

	result := appErr.WithDetails(map[string]interface{}{"value": "nope"})

	assert.Same(t, appErr, result)
	assert.Equal(t, "email", appErr.Details["field"])
	assert.Equal(t, ReasonInvalidFormat, appErr.Details["reason"])
	assert.Equal(t, "nope", appErr.Details["value"])
}

func TestInvalidField(t *testing.T) {
	appErr := InvalidField("username", ReasonRequired, "username is required")

	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "username is required", appErr.Message)
	assert.Equal(t, "username", appErr.Field())
}

func TestNotFound(t *testing.T) {
	appErr := NotFound("User", "juan")

	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, "User not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, "User", appErr.Entity())
	assert.Equal(t, "juan", appErr.Details["id"])
}

func TestAlreadyExists(t *testing.T) {
	t.Run("with detail", func(t *testing.T) {
		appErr := AlreadyExists("Email", "email dup@x.com is already in use")

		assert.Equal(t, CodeAlreadyExists, appErr.Code)
		assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
		assert.Equal(t, "Email", appErr.Entity())
		assert.Equal(t, "email dup@x.com is already in use", appErr.Message)
	})

	t.Run("default detail", func(t *testing.T) {
		appErr := AlreadyExists("Username", "")
		assert.Equal(t, "Username already exists", appErr.Message)
	})
}

func TestUnauthorized(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		expectedMessage string
	}{
		{name: "with custom message", message: "invalid token", expectedMessage: "invalid token"},
		{name: "with empty message", message: "", expectedMessage: "authentication required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := Unauthorized(tt.message)

			assert.Equal(t, CodeUnauthorized, appErr.Code)
			assert.Equal(t, tt.expectedMessage, appErr.Message)
			assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
		})
	}
}

func TestBlocked(t *testing.T) {
	appErr := Blocked("")

	assert.Equal(t, CodeBlocked, appErr.Code)
	assert.Equal(t, "user is blocked", appErr.Message)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
}

func TestForbidden(t *testing.T) {
	appErr := Forbidden("")

	assert.Equal(t, CodeForbidden, appErr.Code)
	assert.Equal(t, "access denied", appErr.Message)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
}

func TestTooManyRequests(t *testing.T) {
	appErr := TooManyRequests("too many failed login attempts", 900)

	assert.Equal(t, CodeTooManyRequests, appErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPStatus)
	assert.Equal(t, 900, appErr.Details["retry_after_seconds"])
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(fmt.Errorf("wrapped: %w", Blocked("")), CodeBlocked))
	assert.False(t, HasCode(Unauthorized(""), CodeBlocked))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}

func TestAsAppError(t *testing.T) {
	t.Run("wrapped AppError", func(t *testing.T) {
		original := NotFound("User", 1)
		result, ok := AsAppError(fmt.Errorf("wrapped: %w", original))

		require.True(t, ok)
		assert.Same(t, original, result)
	})

	t.Run("not AppError", func(t *testing.T) {
		result, ok := AsAppError(errors.New("regular error"))

		assert.False(t, ok)
		assert.Nil(t, result)
	})
}

func TestFromError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, FromError(nil))
	})

	t.Run("already AppError", func(t *testing.T) {
		original := Unauthorized("token expired")
		assert.Same(t, original, FromError(fmt.Errorf("auth failed: %w", original)))
	})

	t.Run("regular error is hidden behind a generic message", func(t *testing.T) {
		regularErr := errors.New("pq: connection refused")
		result := FromError(regularErr)

		assert.Equal(t, CodeInternal, result.Code)
		assert.Equal(t, "an unexpected error occurred", result.Message)
		assert.Equal(t, http.StatusInternalServerError, result.HTTPStatus)
		assert.Equal(t, regularErr, result.Err)
	})
}
