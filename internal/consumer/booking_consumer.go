package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
)

const confirmationTemplate = "booking_confirmed"

var (
	errIncompleteMessage = errors.New("booking message has no email")
	errTemplate          = errors.New("confirmation template")
)

// BookingConsumer sends a confirmation email for every booking.created
// message.
type BookingConsumer struct {
	mailer  mailer.Mailer
	baseURL string
	logger  *slog.Logger
}

func NewBookingConsumer(m mailer.Mailer, baseURL string, logger *slog.Logger) *BookingConsumer {
	return &BookingConsumer{mailer: m, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// Start handles deliveries in the background. The returned channel is closed
// once msgs is closed and drained.
func (bc *BookingConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			bc.handleMessage(ctx, msg)
		}
		bc.logger.Info("delivery channel closed, stopping consumer")
	}()
	return done
}

func (bc *BookingConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var booking dto.BookingMessage
	if err := json.Unmarshal(msg.Body, &booking); err != nil || booking.Email == "" {
		if err == nil {
			err = errIncompleteMessage
		}
		bc.logger.Error("dropping undecodable message", "routing_key", msg.RoutingKey, "error", err)
		_ = msg.Nack(false, false)
		return
	}

	if err := bc.sendConfirmation(ctx, booking); err != nil {
		if errors.Is(err, mailer.ErrRejected) || errors.Is(err, errTemplate) {
			bc.logger.Error("confirmation rejected, dead-lettering", "booking_id", booking.BookingID, "error", err)
			_ = msg.Nack(false, false)
			return
		}
		// The queue's delivery limit dead-letters a message that keeps failing.
		bc.logger.Error("confirmation failed, requeueing", "booking_id", booking.BookingID, "error", err)
		_ = msg.Nack(false, true)
		return
	}

	bc.logger.Info("confirmation sent", "booking_id", booking.BookingID)
	_ = msg.Ack(false)
}

type confirmation struct {
	BookingID string
	Title     string
	Date      string
	Time      string
	URL       string
}

func (bc *BookingConsumer) sendConfirmation(ctx context.Context, b dto.BookingMessage) error {
	data := confirmation{BookingID: b.BookingID, Title: "your event", URL: bc.baseURL}
	if b.Event != nil {
		data.Title = b.Event.Title
		data.Date = b.Event.Date
		data.Time = b.Event.Time
		data.URL = fmt.Sprintf("%s/events/%s", bc.baseURL, b.Event.Slug)
	}

	subject, html, text, err := mailer.Render(confirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("%w: %w", errTemplate, err)
	}
	return bc.mailer.Send(ctx, b.Email, subject, html, text)
}
