package middleware

import (
	"log/slog"
	"net/http"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/labstack/echo/v4"
)

// NewErrorHandler renders every error as a dto.ErrorResponse. Errors that are
// not *echo.HTTPError are logged and reported as 500.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := dto.ErrorResponse{Message: http.StatusText(code)}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case dto.ErrorResponse:
				resp = m
			case string:
				resp = dto.ErrorResponse{Message: m}
			default:
				resp = dto.ErrorResponse{Message: http.StatusText(code)}
			}
			if he.Internal != nil {
				logger.Error("request failed",
					"method", c.Request().Method,
					"uri", c.Request().RequestURI,
					"status", code,
					"error", he.Internal,
				)
			}
		} else {
			logger.Error("unhandled error",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}
