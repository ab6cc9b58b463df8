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

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d bookingDocument) model() models.Booking {
	return models.Booking{
		ID:        d.ID.Hex(),
		EventID:   d.EventID.Hex(),
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type bookingRepository struct {
	conns *database.Cache[*mongo.Database]
}

func NewBookingRepository(conns *database.Cache[*mongo.Database]) repository.BookingRepository {
	return &bookingRepository{conns: conns}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(database.BookingsCollection), nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	eventID, err := primitive.ObjectIDFromHex(booking.EventID)
	if err != nil {
		return repository.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := bookingDocument{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Email:     booking.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return err
	}

	booking.ID = doc.ID.Hex()
	booking.CreatedAt, booking.UpdatedAt = now, now
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	oid, err := primitive.ObjectIDFromHex(booking.ID)
	if err != nil {
		return repository.ErrNotFound
	}
	eventID, err := primitive.ObjectIDFromHex(booking.EventID)
	if err != nil {
		return repository.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	res, err := coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"eventId":   eventID,
		"email":     booking.Email,
		"updatedAt": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	booking.UpdatedAt = now
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc bookingDocument
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	booking := doc.model()
	return &booking, nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID string) ([]models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return []models.Booking{}, nil
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{"eventId": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, len(docs))
	for i, d := range docs {
		bookings[i] = d.model()
	}
	return bookings, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{"eventId": oid})
}
