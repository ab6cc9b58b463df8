package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/abdunnoorfaruki/devevent/internal/consumer"
	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/mailer"
	"github.com/abdunnoorfaruki/devevent/pkg/rabbitmq"
)

const queueName = "devevent.notifier"

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	if cfg.RabbitURL == "" {
		logger.Error("RABBITMQ_URL is required for the notifier")
		os.Exit(1)
	}

	mq, err := rabbitmq.NewConsumer(cfg.RabbitURL, queueName, []string{dto.RoutingBookingCreated}, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mq.Close()

	msgs, err := mq.Consume()
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := mailer.New(cfg.Mail, logger)
	done := consumer.NewBookingConsumer(m, cfg.PublicBaseURL, logger).Start(ctx, msgs)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case <-done:
		logger.Warn("broker closed the delivery channel")
	}
}
