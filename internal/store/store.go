// Package store selects the repositories for the configured database driver.
package store

import (
	"context"
	"fmt"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/internal/repository/mongodb"
	"github.com/abdunnoorfaruki/devevent/internal/repository/postgres"
	"github.com/abdunnoorfaruki/devevent/pkg/database"
)

// Store bundles the repositories sharing one lazily opened connection.
type Store struct {
	Events   repository.EventRepository
	Bookings repository.BookingRepository

	connected func() bool
	close     func(ctx context.Context) error
}

// Open wires the repositories without connecting. The first repository call
// dials; a missing connection string surfaces there as a *database.ConfigError.
func Open(cfg *config.Config) (*Store, error) {
	setting, uri := cfg.ConnectionSetting()

	switch cfg.DBDriver {
	case config.DriverMongo:
		conns := database.NewMongoCache(setting, uri, cfg.MongoDatabase)
		return &Store{
			Events:    mongodb.NewEventRepository(conns),
			Bookings:  mongodb.NewBookingRepository(conns),
			connected: conns.Connected,
			close: func(ctx context.Context) error {
				if !conns.Connected() {
					return nil
				}
				db, err := conns.Get(ctx)
				if err != nil {
					return err
				}
				return db.Client().Disconnect(ctx)
			},
		}, nil
	case config.DriverPostgres:
		conns := database.NewPostgresCache(setting, uri)
		return &Store{
			Events:    postgres.NewEventRepository(conns),
			Bookings:  postgres.NewBookingRepository(conns),
			connected: conns.Connected,
			close: func(ctx context.Context) error {
				if !conns.Connected() {
					return nil
				}
				db, err := conns.Get(ctx)
				if err != nil {
					return err
				}
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want %q or %q)", cfg.DBDriver, config.DriverMongo, config.DriverPostgres)
	}
}

// Connected reports whether the shared connection has been established.
func (s *Store) Connected() bool {
	return s.connected()
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
