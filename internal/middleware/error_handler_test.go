package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(err, c)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestErrorHandler_HTTPErrorString(t *testing.T) {
	rec, resp := runErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "event not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "event not found", resp.Message)
}

func TestErrorHandler_HTTPErrorWithField(t *testing.T) {
	rec, resp := runErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest,
		dto.ErrorResponse{Message: "venue is required", Field: "venue"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "venue", resp.Field)
}

func TestErrorHandler_PlainErrorIsHidden(t *testing.T) {
	rec, resp := runErrorHandler(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Message)
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	assert.Error(t, v.Validate(&dto.CreateBookingRequest{}))
	assert.NoError(t, v.Validate(&dto.CreateBookingRequest{EventID: "ev-1", Email: "jane@example.com"}))
	assert.Error(t, v.Validate(&dto.EventRequest{Tags: make([]string, 21)}))
}
