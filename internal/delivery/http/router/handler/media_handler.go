package handler

import (
	"net/http"
	"strconv"

	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MediaHandler streams stored uploads.
type MediaHandler struct {
	media service.MediaStorage
}

// NewMediaHandler is the constructor for MediaHandler, injected by Fx.
func NewMediaHandler(media service.MediaStorage) *MediaHandler {
	return &MediaHandler{media: media}
}

// Serve writes the stored object named by :name. Stored names are never reused,
// so responses may be cached indefinitely.
func (h *MediaHandler) Serve(c echo.Context) error {
	reader, err := h.media.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			return domainerrors.ErrMediaNotFound
		}

		return errors.WithStack(err)
	}
	defer reader.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentLength, strconv.FormatInt(reader.Size(), 10))
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	header.Set("X-Content-Type-Options", "nosniff")

	contentType := reader.ContentType()
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, reader)
}
