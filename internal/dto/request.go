package dto

import "github.com/abdunnoorfaruki/devevent/internal/models"

// EventRequest carries the editable fields of an event. Field content is
// checked by the save pipeline; the tags here only bound request size.
type EventRequest struct {
	Title       string   `json:"title" validate:"max=512"`
	Description string   `json:"description" validate:"max=4096"`
	Overview    string   `json:"overview" validate:"max=2048"`
	Image       string   `json:"image" validate:"max=2048"`
	Venue       string   `json:"venue" validate:"max=512"`
	Location    string   `json:"location" validate:"max=512"`
	Date        string   `json:"date" validate:"max=64"`
	Time        string   `json:"time" validate:"max=32"`
	Mode        string   `json:"mode" validate:"max=16"`
	Audience    string   `json:"audience" validate:"max=512"`
	Agenda      []string `json:"agenda" validate:"max=50,dive,max=512"`
	Organizer   string   `json:"organizer" validate:"max=1024"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=64"`
}

func (r EventRequest) ToModel() *models.Event {
	return &models.Event{
		Title:       r.Title,
		Description: r.Description,
		Overview:    r.Overview,
		Image:       r.Image,
		Venue:       r.Venue,
		Location:    r.Location,
		Date:        r.Date,
		Time:        r.Time,
		Mode:        models.EventMode(r.Mode),
		Audience:    r.Audience,
		Agenda:      r.Agenda,
		Organizer:   r.Organizer,
		Tags:        r.Tags,
	}
}

type CreateBookingRequest struct {
	EventID string `json:"eventId" validate:"required,max=64"`
	Email   string `json:"email" validate:"required,max=320"`
}

type UpdateBookingRequest struct {
	EventID *string `json:"eventId" validate:"omitempty,max=64"`
	Email   *string `json:"email" validate:"omitempty,max=320"`
}
