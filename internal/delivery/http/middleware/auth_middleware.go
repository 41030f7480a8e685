package middleware

import (
	"log/slog"
	"net/http"

	"postboard/config"
	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// AuthMiddleware gates routes behind the session cookie.
type AuthMiddleware struct {
	tokenSvc   service.TokenService
	cookieName string
	logger     *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:   tokenSvc,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// Authenticate lets the request through only with a verifiable session cookie.
// No cookie redirects to the login page and leaves cookies alone; a cookie that
// fails verification is expired first. A failed check is never a 401 or 403.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusFound, LoginPath)
		}

		identity, err := m.tokenSvc.Verify(cookie.Value)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Info("Session token rejected", slog.String("error", err.Error()))
			ClearSessionCookie(c, m.cookieName)

			return c.Redirect(http.StatusFound, LoginPath)
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// SetSessionCookie stores the session token. The cookie is scoped to the whole
// site and carries no expiry, Secure or HttpOnly attribute.
func SetSessionCookie(c echo.Context, name, token string) {
	c.SetCookie(&http.Cookie{
		Name:  name,
		Value: token,
		Path:  "/",
	})
}

// ClearSessionCookie tells the browser to drop the session cookie.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
