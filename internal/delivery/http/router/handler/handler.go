// Package handler contains the HTTP handlers for the application.
package handler

import (
	"mime/multipart"
	"net/http"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/delivery/http/middleware"
	"postboard/internal/delivery/http/response"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const profilePath = "/profile"

// bindAndValidate binds the request into dst and runs the echo validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return errors.WithStack(c.Validate(dst))
}

// callerIdentity returns the identity set by the auth gate. Routes without the
// gate get a redirect to the login page.
func callerIdentity(c echo.Context) (entity.Identity, bool) {
	return deliverycontext.GetIdentity(c)
}

func redirectToLogin(c echo.Context) error {
	return response.Redirect(c, middleware.LoginPath)
}

// postIDParam parses :id. Anything that is not a UUID cannot name a post.
func postIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrPostNotFound
	}

	return id, nil
}

// openUpload opens an optional multipart file. A nil input means no file was sent.
// The returned closer is always safe to call.
func openUpload(c echo.Context, field string) (*usecase.UploadInput, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}

		return nil, noop, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	return &usecase.UploadInput{
		Filename: header.Filename,
		Content:  file,
	}, closeQuietly(file), nil
}

func closeQuietly(file multipart.File) func() {
	return func() { _ = file.Close() }
}
