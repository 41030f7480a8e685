// Package response writes handler results as HTML pages, plain text or the JSON envelope,
// depending on what the client accepts.
package response

import (
	"net/http"
	"strings"

	deliverycontext "postboard/internal/delivery/context"
	domainerrors "postboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// WantsJSON reports whether the client asked for JSON, either through Accept
// or by sending a JSON body.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}

	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func meta(c echo.Context) *domainerrors.MetaInfo {
	return &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success writes data in the JSON success envelope.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Message writes a short confirmation: plain text by default, the envelope for JSON clients.
func Message(c echo.Context, statusCode int, message string, data any) error {
	if WantsJSON(c) {
		if data == nil {
			data = map[string]string{"message": message}
		}

		return Success(c, statusCode, data)
	}

	return c.String(statusCode, message)
}

// Page renders an HTML template, or writes data as JSON for JSON clients.
func Page(c echo.Context, statusCode int, template string, page any, data any) error {
	if WantsJSON(c) {
		return Success(c, statusCode, data)
	}

	return c.Render(statusCode, template, page)
}

// Redirect sends the browser to location with 302 Found.
func Redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusFound, location)
}

// Error writes an error: the message as plain text, or the JSON error envelope.
func Error(c echo.Context, statusCode int, errorCode, message string, details any) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	if WantsJSON(c) {
		return c.JSON(statusCode, domainerrors.ErrorResponse{
			Error: &domainerrors.ErrorInfo{
				Code:    errorCode,
				Message: message,
				Details: details,
			},
			Meta: meta(c),
		})
	}

	return c.String(statusCode, message)
}

// AppError writes a domain error with its own status, code and message.
func AppError(c echo.Context, err domainerrors.AppError) error {
	var details any
	if d := err.Details(); d != "" {
		details = d
	}

	return Error(c, err.HTTPCode(), err.ErrorCode(), err.Message(), details)
}
