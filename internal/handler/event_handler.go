package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	events   service.EventService
	bookings service.BookingService
}

func NewEventHandler(events service.EventService, bookings service.BookingService) *EventHandler {
	return &EventHandler{events: events, bookings: bookings}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/:slug", h.GetEvent)
	g.PUT("/:slug", h.UpdateEvent)
	g.GET("/:slug/similar", h.SimilarEvents)
	g.GET("/:slug/bookings", h.ListBookings)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := req.ToModel()
	if err := h.events.CreateEvent(c.Request().Context(), event); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// GetEvent returns the event with its current number of bookings.
func (h *EventHandler) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()

	event, err := h.lookup(ctx, c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}

	count, err := h.bookings.CountBookings(ctx, event.ID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.ToEventResponse(event)
	resp.BookingsCount = &count
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.lookup(ctx, c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}

	event, err := h.events.UpdateEvent(ctx, current.ID, req.ToModel())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.events.ListEvents(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}

func (h *EventHandler) SimilarEvents(c echo.Context) error {
	events, err := h.events.SimilarEvents(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}

func (h *EventHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	event, err := h.lookup(ctx, c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}

	bookings, err := h.bookings.ListBookings(ctx, event.ID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// lookup resolves the :slug path segment, which may also carry the event's
// stored id.
func (h *EventHandler) lookup(ctx context.Context, key string) (*models.Event, error) {
	event, err := h.events.GetEventBySlug(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return h.events.GetEvent(ctx, key)
	}
	return event, err
}
