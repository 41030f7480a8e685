package validator

import (
	"testing"

	domainerrors "postboard/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Age      int    `form:"age" validate:"gte=0,lte=150"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, New().Validate(&sampleForm{Email: "a@x.com", Password: "pw", Age: 30}))
}

func TestValidate_ReportsFormFieldNames(t *testing.T) {
	err := New().Validate(&sampleForm{Email: "not-an-email", Age: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Contains(t, appErr.Details(), "email failed email")
	assert.Contains(t, appErr.Details(), "password failed required")
	assert.Contains(t, appErr.Details(), "age failed gte")
}
