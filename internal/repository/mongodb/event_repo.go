package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Overview    string             `bson:"overview"`
	Image       string             `bson:"image"`
	Venue       string             `bson:"venue"`
	Location    string             `bson:"location"`
	Date        string             `bson:"date"`
	Time        string             `bson:"time"`
	Mode        string             `bson:"mode"`
	Audience    string             `bson:"audience"`
	Agenda      []string           `bson:"agenda"`
	Organizer   string             `bson:"organizer"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toEventDocument(e *models.Event) eventDocument {
	return eventDocument{
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d eventDocument) model() models.Event {
	return models.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Overview:    d.Overview,
		Image:       d.Image,
		Venue:       d.Venue,
		Location:    d.Location,
		Date:        d.Date,
		Time:        d.Time,
		Mode:        models.EventMode(d.Mode),
		Audience:    d.Audience,
		Agenda:      d.Agenda,
		Organizer:   d.Organizer,
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type eventRepository struct {
	conns *database.Cache[*mongo.Database]
}

func NewEventRepository(conns *database.Cache[*mongo.Database]) repository.EventRepository {
	return &eventRepository{conns: conns}
}

func (r *eventRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(database.EventsCollection), nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := toEventDocument(event)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}
		return err
	}

	event.ID = doc.ID.Hex()
	event.CreatedAt, event.UpdatedAt = now, now
	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return repository.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	doc := toEventDocument(event)
	doc.ID = oid
	doc.UpdatedAt = time.Now().UTC()

	res, err := coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	event.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *eventRepository) findOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc eventDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	event := doc.model()
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *eventRepository) FindByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]models.Event, error) {
	if len(tags) == 0 {
		return []models.Event{}, nil
	}
	filter := bson.M{"tags": bson.M{"$in": tags}}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *eventRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]models.Event, len(docs))
	for i, d := range docs {
		events[i] = d.model()
	}
	return events, nil
}
