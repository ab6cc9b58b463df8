package repository

import (
	"context"
	"errors"

	"github.com/abdunnoorfaruki/devevent/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateSlug = errors.New("an event with this slug already exists")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	// FindByTags returns up to limit events sharing at least one tag,
	// excluding excludeID.
	FindByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByEventID(ctx context.Context, eventID string) ([]models.Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}
