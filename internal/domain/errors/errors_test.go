package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("Email failed email")

	assert.True(t, errors.Is(detailed, ErrValidationFailed))
	assert.False(t, errors.Is(detailed, ErrForbidden))
	assert.Equal(t, "Email failed email", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details(), "predefined value must stay untouched")
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	err := errors.WithStack(ErrUploadFailed.WrapMessage("disk full"))

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "Could not store uploaded file", appErr.Message())
	assert.True(t, errors.Is(err, ErrUploadFailed))
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert post")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.NotContains(t, err.Message(), "connection reset")
	assert.True(t, errors.Is(err, cause))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *BaseError
		code int
	}{
		{ErrUserAlreadyExists, http.StatusConflict},
		{ErrUnknownAccount, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrPostNotFound, http.StatusNotFound},
		{ErrValidationFailed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.ErrorCode(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.HTTPCode())
		})
	}
}
