package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/validate"
)

type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, eventID, email *string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, eventID string) ([]models.Booking, error)
	CountBookings(ctx context.Context, eventID string) (int64, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	publisher   Publisher
	logger      *slog.Logger
}

func NewBookingService(bookingRepo repository.BookingRepository, eventRepo repository.EventRepository, publisher Publisher, logger *slog.Logger) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*models.Booking, error) {
	booking := &models.Booking{EventID: eventID, Email: email}
	if err := validate.PrepareBooking(ctx, s.eventRepo, nil, booking); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.publish(ctx, dto.RoutingBookingCreated, booking)
	return booking, nil
}

// UpdateBooking changes the event reference and/or email of a booking. Nil
// arguments leave the field as stored.
func (s *bookingService) UpdateBooking(ctx context.Context, id string, eventID, email *string) (*models.Booking, error) {
	prev, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *prev
	if eventID != nil {
		next.EventID = *eventID
	}
	if email != nil {
		next.Email = *email
	}
	if err := validate.PrepareBooking(ctx, s.eventRepo, prev, &next); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.publish(ctx, dto.RoutingBookingUpdated, &next)
	return &next, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, eventID string) ([]models.Booking, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByEventID(ctx, eventID)
}

func (s *bookingService) CountBookings(ctx context.Context, eventID string) (int64, error) {
	return s.bookingRepo.CountByEventID(ctx, eventID)
}

func (s *bookingService) publish(ctx context.Context, routingKey string, b *models.Booking) {
	if s.publisher == nil {
		return
	}

	msg := dto.BookingMessage{BookingID: b.ID, EventID: b.EventID, Email: b.Email}
	if event, err := s.eventRepo.FindByID(ctx, b.EventID); err == nil {
		em := eventMessage(event)
		msg.Event = &em
	}

	if err := s.publisher.Publish(routingKey, msg); err != nil {
		s.logger.Warn("publish failed", "routing_key", routingKey, "booking_id", b.ID, "error", err)
	}
}
