package handler

import (
	"log/slog"
	"net/http"

	"postboard/internal/delivery/http/response"
	"postboard/internal/delivery/http/view"
	"postboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profile usecase.ProfileUsecase
	logger  *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profile usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
		logger:  logger,
	}
}

// Profile shows the caller with its posts.
func (h *ProfileHandler) Profile(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	out, err := h.profile.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	page := view.NewProfilePage(out.User, out.Posts)

	return response.Page(c, http.StatusOK, view.PageProfile, page, page)
}

// UploadAvatar replaces the caller's avatar. Without a file it just goes back to the profile.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	upload, closeUpload, err := openUpload(c, "avatar")
	defer closeUpload()
	if err != nil {
		return err
	}
	if upload == nil {
		return response.Redirect(c, profilePath)
	}

	if _, err := h.profile.ReplaceAvatar(c.Request().Context(), identity.UserID, upload); err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, profilePath)
}
