package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"postboard/config"
	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	"postboard/internal/domain/service"
	mockSvc "postboard/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGate(t *testing.T) (*AuthMiddleware, *mockSvc.MockTokenService) {
	t.Helper()

	tokens := mockSvc.NewMockTokenService(t)
	cfg := &config.Config{}
	cfg.Session.CookieName = "token"

	return NewAuthMiddleware(tokens, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), tokens
}

func runGate(t *testing.T, gate *AuthMiddleware, cookie *http.Cookie) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	err := gate.Authenticate(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return rec, reached, c
}

func TestAuthenticate_NoCookie(t *testing.T) {
	gate, _ := newGate(t)

	rec, reached, _ := runGate(t, gate, nil)

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestAuthenticate_EmptyCookie(t *testing.T) {
	gate, _ := newGate(t)

	rec, reached, _ := runGate(t, gate, &http.Cookie{Name: "token", Value: ""})

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestAuthenticate_InvalidTokenClearsCookie(t *testing.T) {
	gate, tokens := newGate(t)
	tokens.EXPECT().Verify("garbage").Return(entity.Identity{}, service.ErrInvalidToken)

	rec, reached, _ := runGate(t, gate, &http.Cookie{Name: "token", Value: "garbage"})

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	gate, tokens := newGate(t)
	identity := entity.Identity{UserID: uuid.New(), Email: "a@x.com"}
	tokens.EXPECT().Verify("good").Return(identity, nil)

	rec, reached, c := runGate(t, gate, &http.Cookie{Name: "token", Value: "good"})

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))

	got, ok := deliverycontext.GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, identity, got)

	fromCtx, ok := deliverycontext.IdentityFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, identity, fromCtx)
}

func TestAuthenticate_OtherCookiesIgnored(t *testing.T) {
	gate, _ := newGate(t)

	rec, reached, _ := runGate(t, gate, &http.Cookie{Name: "session", Value: "x"})

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestSessionCookieHelpers(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	SetSessionCookie(c, "token", "abc")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Zero(t, cookies[0].MaxAge)
	assert.False(t, cookies[0].HttpOnly)
}
