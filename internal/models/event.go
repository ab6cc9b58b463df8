package models

import "time"

type EventMode string

const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
	ModeHybrid  EventMode = "hybrid"
)

func (m EventMode) Valid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"not null" json:"description"`
	Overview    string    `gorm:"not null" json:"overview"`
	Image       string    `gorm:"not null" json:"image"`
	Venue       string    `gorm:"not null" json:"venue"`
	Location    string    `gorm:"not null" json:"location"`
	Date        string    `gorm:"not null" json:"date"`
	Time        string    `gorm:"not null" json:"time"`
	Mode        EventMode `gorm:"type:varchar(10);not null" json:"mode"`
	Audience    string    `gorm:"not null" json:"audience"`
	Agenda      []string  `gorm:"type:jsonb;serializer:json;not null" json:"agenda"`
	Organizer   string    `gorm:"not null" json:"organizer"`
	Tags        []string  `gorm:"type:jsonb;serializer:json;not null" json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
