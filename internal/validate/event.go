package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"github.com/abdunnoorfaruki/devevent/internal/normalize"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
	maxOverviewLen    = 500
)

// PrepareEvent normalizes next in place and validates the result. prev is the
// currently stored version, or nil when next is being created.
//
// Normalization runs before validation, so a field that normalizes to empty
// is still rejected.
func PrepareEvent(prev, next *models.Event) error {
	trimEvent(next)

	if prev == nil || prev.Slug == "" || next.Title != prev.Title {
		next.Slug = normalize.Slug(next.Title)
	} else {
		next.Slug = prev.Slug
	}
	if prev == nil || next.Date != prev.Date {
		next.Date = normalize.Date(next.Date)
	}
	if prev == nil || next.Time != prev.Time {
		next.Time = normalize.Time(next.Time)
	}

	return checkEvent(next)
}

func trimEvent(e *models.Event) {
	for _, f := range []*string{
		&e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue,
		&e.Location, &e.Date, &e.Time, &e.Audience, &e.Organizer,
	} {
		*f = strings.TrimSpace(*f)
	}
	e.Mode = models.EventMode(strings.ToLower(strings.TrimSpace(string(e.Mode))))
	e.Agenda = compact(e.Agenda, false)
	e.Tags = compact(e.Tags, true)
}

// compact trims every item and drops empties (and repeats, when unique).
func compact(items []string, unique bool) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if unique {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

func checkEvent(e *models.Event) error {
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "is required")
		}
	}

	// TODO: reject dates and times that normalization could not interpret;
	// today a malformed but non-empty value is stored as typed.

	if e.Slug == "" {
		return invalid("slug", "cannot be derived from title")
	}
	if !e.Mode.Valid() {
		return invalid("mode", "must be one of online, offline, hybrid")
	}
	if len(e.Agenda) == 0 {
		return invalid("agenda", "must contain at least one item")
	}
	if len(e.Tags) == 0 {
		return invalid("tags", "must contain at least one tag")
	}

	if utf8.RuneCountInString(e.Title) > maxTitleLen {
		return invalid("title", "must be at most 100 characters")
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return invalid("description", "must be at most 1000 characters")
	}
	if utf8.RuneCountInString(e.Overview) > maxOverviewLen {
		return invalid("overview", "must be at most 500 characters")
	}

	return nil
}
