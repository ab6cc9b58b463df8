package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/validate"
	"github.com/abdunnoorfaruki/devevent/pkg/database"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes. The order matters:
// a slug conflict is also a ValidationError, and an orphan booking is a
// ValidationError wrapping repository.ErrNotFound.
func toHTTPError(err error) *echo.HTTPError {
	var (
		ve      *validate.ValidationError
		cfgErr  *database.ConfigError
		connErr *database.ConnectionError
	)

	switch {
	case errors.Is(err, repository.ErrDuplicateSlug):
		return echo.NewHTTPError(http.StatusConflict, dto.ErrorResponse{
			Message: "an event with this slug already exists",
			Field:   "slug",
		}).SetInternal(err)
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
			Message: ve.Error(),
			Field:   ve.Field,
		})
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.As(err, &cfgErr), errors.As(err, &connErr):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
	}
}

// bindAndValidate decodes the body into req and applies its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
				Message: fmt.Sprintf("validation failed: %s failed %q", fe.Field(), fe.Tag()),
				Field:   fe.Field(),
			})
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
