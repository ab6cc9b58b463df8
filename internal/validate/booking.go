package validate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/repository"
)

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// EventLookup resolves an event by identity. It returns repository.ErrNotFound
// when no such event exists.
type EventLookup interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

// PrepareBooking normalizes next in place and validates it. The referenced
// event is resolved only when the booking is new or its event changed.
func PrepareBooking(ctx context.Context, events EventLookup, prev, next *models.Booking) error {
	next.Email = strings.ToLower(strings.TrimSpace(next.Email))
	next.EventID = strings.TrimSpace(next.EventID)

	if err := Email(next.Email); err != nil {
		return err
	}

	if prev != nil && prev.EventID == next.EventID {
		return nil
	}
	return EventExists(ctx, events, next.EventID)
}

// Email checks an already-normalized address against the accepted pattern.
func Email(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	if !emailPattern.MatchString(email) {
		return invalid("email", "is not a valid email address")
	}
	return nil
}

// EventExists rejects a reference to an event that cannot be found.
func EventExists(ctx context.Context, events EventLookup, eventID string) error {
	if eventID == "" {
		return invalid("eventId", "is required")
	}

	if _, err := events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{
				Field:  "eventId",
				Reason: fmt.Sprintf("references event %s, which does not exist", eventID),
				Err:    err,
			}
		}
		return fmt.Errorf("resolve event %s: %w", eventID, err)
	}
	return nil
}
