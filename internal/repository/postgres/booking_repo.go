package postgres

import (
	"context"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
	"github.com/abdunnoorfaruki/devevent/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	conns *database.Cache[*gorm.DB]
}

func NewBookingRepository(conns *database.Cache[*gorm.DB]) repository.BookingRepository {
	return &bookingRepository{conns: conns}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return err
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	db, err := r.conns.Get(ctx)
	if err != nil {
		return err
	}

	res := db.WithContext(ctx).
		Model(booking).
		Select("event_id", "email", "updated_at").
		Updates(booking)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	if err := db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID string) ([]models.Booking, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return []models.Booking{}, nil
	}
	db, err := r.conns.Get(ctx)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return 0, nil
	}
	db, err := r.conns.Get(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.WithContext(ctx).Model(&models.Booking{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
