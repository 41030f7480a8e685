package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()

	generated := GetRequestID(c)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(context.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	scoped := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, GetLoggerOrDefault(context.Background(), nil))
}

func TestIdentity(t *testing.T) {
	c := newEchoContext()

	_, ok := GetIdentity(c)
	assert.False(t, ok)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), logger)))

	identity := entity.Identity{UserID: uuid.New(), Email: "a@x.com"}
	SetIdentity(c, identity)

	got, ok := GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, identity, got)

	fromCtx, ok := IdentityFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, identity, fromCtx)

	GetLogger(c.Request().Context()).Info("tagged")
	assert.Contains(t, buf.String(), "user_id="+identity.UserID.String())
}
