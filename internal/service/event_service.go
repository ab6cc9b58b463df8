package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/validate"
)

const similarEventsLimit = 3

// Publisher announces domain changes. A nil Publisher disables announcements.
// Messages go to a topic exchange without the mandatory flag: event.* keys
// have no subscriber in this repo and are dropped unless an external queue
// binds them, while booking.created feeds cmd/notifier.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, id string, event *models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	SimilarEvents(ctx context.Context, slug string) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher Publisher
	logger    *slog.Logger
}

func NewEventService(repo repository.EventRepository, publisher Publisher, logger *slog.Logger) EventService {
	return &eventService{repo: repo, publisher: publisher, logger: logger}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := validate.PrepareEvent(nil, event); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", slugConflict(err))
	}

	s.publish(dto.RoutingEventCreated, eventMessage(event))
	return nil
}

// UpdateEvent replaces the editable fields of the stored event. The slug is
// kept unless the title changed.
func (s *eventService) UpdateEvent(ctx context.Context, id string, event *models.Event) (*models.Event, error) {
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.ID = prev.ID
	event.CreatedAt = prev.CreatedAt
	if err := validate.PrepareEvent(prev, event); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", slugConflict(err))
	}

	s.publish(dto.RoutingEventUpdated, eventMessage(event))
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindAll(ctx)
}

// SimilarEvents returns events sharing at least one tag with the event
// identified by slug.
func (s *eventService) SimilarEvents(ctx context.Context, slug string) ([]models.Event, error) {
	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByTags(ctx, event.Tags, event.ID, similarEventsLimit)
}

func (s *eventService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Warn("publish failed", "routing_key", routingKey, "error", err)
	}
}

func eventMessage(e *models.Event) dto.EventMessage {
	return dto.EventMessage{ID: e.ID, Title: e.Title, Slug: e.Slug, Date: e.Date, Time: e.Time}
}

// slugConflict reports a unique-slug violation as a validation failure.
func slugConflict(err error) error {
	if errors.Is(err, repository.ErrDuplicateSlug) {
		return &validate.ValidationError{Field: "slug", Reason: "is already used by another event", Err: err}
	}
	return err
}
