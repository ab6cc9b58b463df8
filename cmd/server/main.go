package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/abdunnoorfaruki/devevent/internal/handler"
	"github.com/abdunnoorfaruki/devevent/internal/middleware"
	"github.com/abdunnoorfaruki/devevent/internal/seed"
	"github.com/abdunnoorfaruki/devevent/internal/service"
	"github.com/abdunnoorfaruki/devevent/internal/store"
	"github.com/abdunnoorfaruki/devevent/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("invalid store configuration", "error", err)
		os.Exit(1)
	}

	// Publishing is optional; without RabbitMQ the API still serves.
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL not set, domain messages are disabled")
	}

	fixtures, err := seed.Load()
	if err != nil {
		logger.Error("failed to load featured events", "error", err)
		os.Exit(1)
	}

	eventSvc := service.NewEventService(st.Events, publisher, logger)
	bookingSvc := service.NewBookingService(st.Bookings, st.Events, publisher, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(logger)
	e.Validator = middleware.NewRequestValidator()
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		db := "pending"
		if st.Connected() {
			db = "connected"
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "database": db})
	})

	api := e.Group("/api/v1")
	handler.NewEventHandler(eventSvc, bookingSvc).RegisterRoutes(api.Group("/events"))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api.Group("/bookings"))
	api.GET("/featured", handler.NewFeaturedHandler(fixtures).ListFeatured)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "driver", cfg.DBDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("store close", "error", err)
	}
}
