package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "mergington.GO/core/errors"
)

// ErrorResponse is the body of every failed request. The browser client reads detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// NewHTTPErrorHandler maps handler errors onto status codes and ErrorResponse bodies.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
			)
		}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn("write error response", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	if stdErr, ok := apperrors.AsStandard(err); ok {
		return apperrors.HTTPStatus(stdErr), ErrorResponse{Detail: stdErr.Message, Code: string(stdErr.Code)}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			detail = msg
		}
		return he.Code, ErrorResponse{Detail: detail}
	}
	return http.StatusInternalServerError, ErrorResponse{Detail: http.StatusText(http.StatusInternalServerError)}
}
