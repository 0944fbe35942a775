package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewNotFoundError("file"), http.StatusNotFound},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewForbiddenError(""), http.StatusForbidden},
		{NewQuotaExceededError(5), http.StatusForbidden},
		{NewRateLimitedError(10, 30), http.StatusTooManyRequests},
		{NewSaveFailedError("file", errors.New("down")), http.StatusBadGateway},
		{NewInternalError("oops"), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatusFor(tc.err), "error: %v", tc.err)
	}
}

func TestGetAppError_UnwrapsChains(t *testing.T) {
	inner := NewNotFoundError("file", "abc123")
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.Equal(t, "abc123", appErr.Details["id"])

	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestNewNotFoundError_MessageNeverLeaksID(t *testing.T) {
	err := NewNotFoundError("file", "secret-id")
	assert.Equal(t, "file not found", err.Message)
	assert.NotContains(t, err.Error(), "secret-id")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("file")))
	assert.False(t, IsNotFound(NewForbiddenError("")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewSaveFailedError("file", errors.New("down"))))
	assert.True(t, IsRetryable(NewRateLimitedError(10, 1)))
	assert.True(t, IsRetryable(errors.New("network blip")))

	assert.False(t, IsRetryable(NewForbiddenError("")))
	assert.False(t, IsRetryable(NewValidationError("bad")))
	assert.False(t, IsRetryable(NewNotFoundError("file")))
}

func TestAppError_WithCauseUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("storage failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
