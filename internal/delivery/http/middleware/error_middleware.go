package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/delivery/http/response"
	domainerrors "postboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Domain errors keep
// their status and message; anything else becomes a generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logServerError(c, err)
		}
		m.write(c, response.AppError(c, appErr))

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			message = s
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logServerError(c, err)
		}
		m.write(c, response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil))

		return
	}

	m.logServerError(c, err)
	m.write(c, response.AppError(c, domainerrors.ErrInternalError))
}

func (m *ErrorMiddleware) logServerError(c echo.Context, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("stack", fmt.Sprintf("%+v", err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func (m *ErrorMiddleware) write(c echo.Context, err error) {
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
			Warn("Failed to write error response", slog.String("error", err.Error()))
	}
}
