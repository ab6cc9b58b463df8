package database

import (
	"context"
	"fmt"
	"time"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresCache returns a cache of a GORM handle, opened on first use.
func NewPostgresCache(setting, dsn string) *Cache[*gorm.DB] {
	return NewCache(setting, dsn, PostgresDialer)
}

// PostgresDialer opens the pool (gorm pings on open) and migrates the schema.
func PostgresDialer(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.WithContext(ctx).AutoMigrate(&models.Event{}, &models.Booking{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}
