package handler

import (
	"net/http"

	"github.com/abdunnoorfaruki/devevent/internal/seed"
	"github.com/labstack/echo/v4"
)

// FeaturedHandler serves the static example events shown on the home page.
type FeaturedHandler struct {
	fixtures []seed.Fixture
}

func NewFeaturedHandler(fixtures []seed.Fixture) *FeaturedHandler {
	return &FeaturedHandler{fixtures: fixtures}
}

func (h *FeaturedHandler) ListFeatured(c echo.Context) error {
	if h.fixtures == nil {
		return c.JSON(http.StatusOK, []seed.Fixture{})
	}
	return c.JSON(http.StatusOK, h.fixtures)
}
