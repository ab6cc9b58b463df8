package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/abdunnoorfaruki/devevent/internal/seed"
	"github.com/abdunnoorfaruki/devevent/internal/service"
	"github.com/abdunnoorfaruki/devevent/internal/store"
)

func main() {
	file := flag.String("file", "", "YAML fixture file (defaults to the built-in events)")
	flag.Parse()

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	fixtures, err := loadFixtures(*file)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("invalid store configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer st.Close(ctx)

	events := service.NewEventService(st.Events, nil, logger)
	created, skipped, err := seed.Apply(ctx, events, fixtures, logger)
	if err != nil {
		logger.Error("seeding failed", "created", created, "error", err)
		os.Exit(1)
	}

	logger.Info("seeding complete", "created", created, "skipped", skipped)
}

func loadFixtures(path string) ([]seed.Fixture, error) {
	if path == "" {
		return seed.Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
