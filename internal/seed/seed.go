// Package seed holds the static example events used to populate the UI and
// to bootstrap an empty database.
package seed

import (
	_ "embed"
	"fmt"
	"net/url"

	"github.com/abdunnoorfaruki/devevent/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed events.yaml
var eventsYAML []byte

type Fixture struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Image       string   `yaml:"image" json:"image"`
	Location    string   `yaml:"location" json:"location"`
	Date        string   `yaml:"date" json:"date"`
	Time        string   `yaml:"time" json:"time"`
	Description string   `yaml:"description" json:"description"`
	URL         string   `yaml:"url" json:"url"`
	Tags        []string `yaml:"tags" json:"tags"`
	Mode        string   `yaml:"mode" json:"mode"`
}

type fixtureFile struct {
	Events []Fixture `yaml:"events"`
}

// Load returns the embedded fixtures.
func Load() ([]Fixture, error) {
	return Parse(eventsYAML)
}

func Parse(data []byte) ([]Fixture, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, fx := range f.Events {
		if fx.ID == "" || fx.Title == "" {
			return nil, fmt.Errorf("fixture %d: id and title are required", i)
		}
	}
	return f.Events, nil
}

// Event expands a fixture into a full event. Fields the fixture does not
// carry are derived from the ones it does.
func (f Fixture) Event() *models.Event {
	organizer := f.Title
	if u, err := url.Parse(f.URL); err == nil && u.Host != "" {
		organizer = u.Host
	}

	mode := models.EventMode(f.Mode)
	if mode == "" {
		mode = models.ModeOffline
	}

	return &models.Event{
		Title:       f.Title,
		Description: f.Description,
		Overview:    f.Description,
		Image:       f.Image,
		Venue:       f.Location,
		Location:    f.Location,
		Date:        f.Date,
		Time:        f.Time,
		Mode:        mode,
		Audience:    "Developers",
		Agenda:      []string{"Registration", "Keynote", "Sessions", "Networking"},
		Organizer:   organizer,
		Tags:        f.Tags,
	}
}
