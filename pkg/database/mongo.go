package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	EventsCollection   = "events"
	BookingsCollection = "bookings"
)

const mongoConnectTimeout = 10 * time.Second

// NewMongoCache returns a cache of the named database, dialled on first use.
func NewMongoCache(setting, uri, dbName string) *Cache[*mongo.Database] {
	return NewCache(setting, uri, MongoDialer(dbName))
}

// MongoDialer connects, pings the primary and ensures indexes before handing
// the database back, so no operation is ever queued on an unopened client.
func MongoDialer(dbName string) Dialer[*mongo.Database] {
	return func(ctx context.Context, uri string) (*mongo.Database, error) {
		ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(uri).
			SetServerSelectionTimeout(mongoConnectTimeout))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo ping: %w", err)
		}

		db := client.Database(dbName)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		return db, nil
	}
}

// EnsureMongoIndexes creates the unique slug index on events and the event
// lookup index on bookings.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	}); err != nil {
		return fmt.Errorf("create events.slug index: %w", err)
	}

	if _, err := db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetName("eventId"),
	}); err != nil {
		return fmt.Errorf("create bookings.eventId index: %w", err)
	}

	return nil
}
