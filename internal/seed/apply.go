package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/normalize"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
)

type EventCreator interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)
}

// Apply creates an event for every fixture whose slug is not stored yet.
func Apply(ctx context.Context, events EventCreator, fixtures []Fixture, logger *slog.Logger) (created, skipped int, err error) {
	for _, f := range fixtures {
		slug := normalize.Slug(f.Title)

		_, err := events.GetEventBySlug(ctx, slug)
		switch {
		case err == nil:
			logger.Info("fixture already present", "slug", slug)
			skipped++
			continue
		case !errors.Is(err, repository.ErrNotFound):
			return created, skipped, fmt.Errorf("look up %s: %w", slug, err)
		}

		if err := events.CreateEvent(ctx, f.Event()); err != nil {
			return created, skipped, fmt.Errorf("seed %s: %w", f.ID, err)
		}
		logger.Info("fixture created", "slug", slug)
		created++
	}
	return created, skipped, nil
}
