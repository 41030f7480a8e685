package handler

import (
	"log/slog"
	"net/http"

	"postboard/config"
	"postboard/internal/delivery/http/middleware"
	"postboard/internal/delivery/http/response"
	"postboard/internal/delivery/http/view"
	"postboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerForm struct {
	Username string `form:"username" json:"username"`
	Name     string `form:"name" json:"name"`
	Age      int    `form:"age" json:"age" validate:"gte=0,lte=150"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,max=72"`
}

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	account    usecase.AccountUsecase
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(account usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		account:    account,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, nil)
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, nil)
}

// Register creates the account and logs the new user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	out, err := h.account.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Username: form.Username,
		Age:      form.Age,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	middleware.SetSessionCookie(c, h.cookieName, out.Token)

	return response.Message(c, http.StatusCreated, "User created successfully", view.NewUser(out.User))
}

// Login sets the session cookie and sends the user to the profile page.
// Failures answer 401 with a plain message and set no cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	out, err := h.account.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	middleware.SetSessionCookie(c, h.cookieName, out.Token)

	if response.WantsJSON(c) {
		return response.Success(c, http.StatusOK, view.NewUser(out.User))
	}

	return response.Redirect(c, profilePath)
}

// Logout drops the session cookie. The token itself stays valid.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookieName)

	return response.Redirect(c, middleware.LoginPath)
}
