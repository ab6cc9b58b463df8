package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn     func(ctx context.Context, event *models.Event) error
	updateFn     func(ctx context.Context, event *models.Event) error
	findByIDFn   func(ctx context.Context, id string) (*models.Event, error)
	findBySlugFn func(ctx context.Context, slug string) (*models.Event, error)
	findAllFn    func(ctx context.Context) ([]models.Event, error)
	findByTagsFn func(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return m.findBySlugFn(ctx, slug)
}
func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}
func (m *mockEventRepo) FindByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error) {
	return m.findByTagsFn(ctx, tags, excludeID, limit)
}

// --- Mock Publisher ---

type published struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	messages []published
	err      error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.messages = append(m.messages, published{routingKey, payload})
	return m.err
}

// --- Tests ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *models.Event {
	return &models.Event{
		Title:       "Next.js Conf 2026!!",
		Description: "The official Next.js conference.",
		Overview:    "Two days on the App Router.",
		Image:       "/images/event1.png",
		Venue:       "Moscone Center",
		Location:    "San Francisco, CA",
		Date:        "March 10, 2026",
		Time:        "2:30 PM",
		Mode:        models.ModeHybrid,
		Audience:    "Frontend developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "Vercel",
		Tags:        []string{"nextjs", "react"},
	}
}

func TestCreateEvent_Success(t *testing.T) {
	var stored *models.Event
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = "ev-1"
			stored = event
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := NewEventService(repo, pub, discardLogger())
	event := sampleEvent()

	err := svc.CreateEvent(context.Background(), event)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "nextjs-conf-2026", stored.Slug)
	assert.Equal(t, "2026-03-10", stored.Date)
	assert.Equal(t, "14:30", stored.Time)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, dto.RoutingEventCreated, pub.messages[0].routingKey)
}

func TestCreateEvent_ValidationErrorSkipsRepo(t *testing.T) {
	called := false
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			called = true
			return nil
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	event := sampleEvent()
	event.Venue = "   "

	err := svc.CreateEvent(context.Background(), event)

	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "venue", ve.Field)
	assert.False(t, called)
}

func TestCreateEvent_DuplicateSlug(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			return repository.ErrDuplicateSlug
		},
	}
	pub := &mockPublisher{}

	svc := NewEventService(repo, pub, discardLogger())
	err := svc.CreateEvent(context.Background(), sampleEvent())

	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "slug", ve.Field)
	assert.ErrorIs(t, err, repository.ErrDuplicateSlug)
	assert.Empty(t, pub.messages)
}

func TestCreateEvent_RepoError(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			return errors.New("db connection failed")
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	err := svc.CreateEvent(context.Background(), sampleEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
}

func TestCreateEvent_PublishFailureIsNotFatal(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error { return nil },
	}
	pub := &mockPublisher{err: errors.New("channel closed")}

	svc := NewEventService(repo, pub, discardLogger())

	assert.NoError(t, svc.CreateEvent(context.Background(), sampleEvent()))
	assert.Len(t, pub.messages, 1)
}

func TestUpdateEvent_KeepsSlugWhenTitleUnchanged(t *testing.T) {
	prev := sampleEvent()
	require.NoError(t, validate.PrepareEvent(nil, prev))
	prev.ID = "ev-1"
	prev.Slug = "nextjs-conf-2026-legacy"

	var updated *models.Event
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Event, error) {
			return prev, nil
		},
		updateFn: func(ctx context.Context, event *models.Event) error {
			updated = event
			return nil
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	next := sampleEvent()
	next.Description = "Now with more workshops."

	event, err := svc.UpdateEvent(context.Background(), "ev-1", next)

	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)
	assert.Equal(t, "nextjs-conf-2026-legacy", updated.Slug)
	assert.Equal(t, "Now with more workshops.", updated.Description)
}

func TestUpdateEvent_PublishesUpdated(t *testing.T) {
	prev := sampleEvent()
	require.NoError(t, validate.PrepareEvent(nil, prev))
	prev.ID = "ev-1"

	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Event, error) { return prev, nil },
		updateFn:   func(ctx context.Context, event *models.Event) error { return nil },
	}
	pub := &mockPublisher{}

	svc := NewEventService(repo, pub, discardLogger())
	next := sampleEvent()
	next.Time = "6:00 pm"

	_, err := svc.UpdateEvent(context.Background(), "ev-1", next)

	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, dto.RoutingEventUpdated, pub.messages[0].routingKey)
	assert.Equal(t, dto.EventMessage{ID: "ev-1", Title: prev.Title, Slug: prev.Slug, Date: "2026-03-10", Time: "18:00"}, pub.messages[0].payload)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Event, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	event, err := svc.UpdateEvent(context.Background(), "missing", sampleEvent())

	assert.Nil(t, event)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetEventBySlug(t *testing.T) {
	repo := &mockEventRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Event, error) {
			return &models.Event{ID: "ev-1", Slug: slug, Title: "Next.js Conf"}, nil
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	event, err := svc.GetEventBySlug(context.Background(), "nextjs-conf")

	require.NoError(t, err)
	assert.Equal(t, "Next.js Conf", event.Title)
}

func TestListEvents_Empty(t *testing.T) {
	repo := &mockEventRepo{
		findAllFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{}, nil
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	events, err := svc.ListEvents(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestSimilarEvents(t *testing.T) {
	repo := &mockEventRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Event, error) {
			return &models.Event{ID: "ev-1", Slug: slug, Tags: []string{"react"}}, nil
		},
		findByTagsFn: func(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error) {
			assert.Equal(t, []string{"react"}, tags)
			assert.Equal(t, "ev-1", excludeID)
			assert.Equal(t, 3, limit)
			return []models.Event{{ID: "ev-2", Slug: "react-summit"}}, nil
		},
	}

	svc := NewEventService(repo, nil, discardLogger())
	events, err := svc.SimilarEvents(context.Background(), "nextjs-conf")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "react-summit", events[0].Slug)
}
