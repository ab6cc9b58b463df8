package postgres

import (
	"context"
	"errors"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type eventRepository struct {
	conns *database.Cache[*gorm.DB]
}

func NewEventRepository(conns *database.Cache[*gorm.DB]) repository.EventRepository {
	return &eventRepository{conns: conns}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return translate(db.WithContext(ctx).Create(event).Error)
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return err
	}

	res := db.WithContext(ctx).
		Model(event).
		Select("*").
		Omit("id", "created_at").
		Updates(event)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *eventRepository) first(ctx context.Context, query string, args ...any) (*models.Event, error) {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := db.WithContext(ctx).Where(query, args...).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error) {
	if len(tags) == 0 {
		return []models.Event{}, nil
	}
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}

	q := db.WithContext(ctx).Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag IN ?)", tags)
	if _, err := uuid.Parse(excludeID); err == nil {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []models.Event
	if err := q.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// translate maps gorm sentinels onto repository errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicateSlug
	}
	return err
}
