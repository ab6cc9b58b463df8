package dto

// Routing keys published on the domain exchange.
const (
	RoutingEventCreated   = "event.created"
	RoutingEventUpdated   = "event.updated"
	RoutingBookingCreated = "booking.created"
	RoutingBookingUpdated = "booking.updated"
)

type EventMessage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

type BookingMessage struct {
	BookingID string        `json:"bookingId"`
	Email     string        `json:"email"`
	Event     *EventMessage `json:"event,omitempty"`
	EventID   string        `json:"eventId"`
}
