package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/abdunnoorfaruki/devevent/internal/dto"
	"github.com/abdunnoorfaruki/devevent/internal/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}
func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}
func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type sentMail struct {
	to, subject, html, text string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.sent = append(m.sent, sentMail{to, subject, html, text})
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func delivery(t *testing.T, ack amqp.Acknowledger, payload any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, RoutingKey: dto.RoutingBookingCreated, Body: body}
}

// --- Tests ---

func TestHandleMessage_SendsConfirmation(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{}
	bc := NewBookingConsumer(m, "https://devevent.dev/", discardLogger())

	bc.handleMessage(context.Background(), delivery(t, ack, dto.BookingMessage{
		BookingID: "bk-1",
		EventID:   "ev-1",
		Email:     "jane@example.com",
		Event:     &dto.EventMessage{ID: "ev-1", Title: "GopherCon 2026", Slug: "gophercon-2026", Date: "2026-08-25", Time: "09:00"},
	}))

	assert.True(t, ack.acked)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "jane@example.com", m.sent[0].to)
	assert.Equal(t, "You're booked for GopherCon 2026", m.sent[0].subject)
	assert.Contains(t, m.sent[0].text, "https://devevent.dev/events/gophercon-2026")
	assert.Contains(t, m.sent[0].html, "2026-08-25")
}

func TestHandleMessage_WithoutEventDetails(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{}
	bc := NewBookingConsumer(m, "https://devevent.dev", discardLogger())

	bc.handleMessage(context.Background(), delivery(t, ack, dto.BookingMessage{BookingID: "bk-1", Email: "jane@example.com"}))

	assert.True(t, ack.acked)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "You're booked for your event", m.sent[0].subject)
}

func TestHandleMessage_BadJSONIsDropped(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{}
	bc := NewBookingConsumer(m, "", discardLogger())

	bc.handleMessage(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Empty(t, m.sent)
}

func TestHandleMessage_MissingEmailIsDropped(t *testing.T) {
	ack := &fakeAcknowledger{}
	bc := NewBookingConsumer(&mockMailer{}, "", discardLogger())

	bc.handleMessage(context.Background(), delivery(t, ack, dto.BookingMessage{BookingID: "bk-1"}))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestHandleMessage_MailFailureRequeues(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{err: errors.New("ses throttled")}
	bc := NewBookingConsumer(m, "", discardLogger())

	bc.handleMessage(context.Background(), delivery(t, ack, dto.BookingMessage{BookingID: "bk-1", Email: "jane@example.com"}))

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
	assert.False(t, ack.acked)
}

func TestHandleMessage_RejectedMailIsNotRequeued(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{err: fmt.Errorf("send email via ses: %w: %w", mailer.ErrRejected, errors.New("MessageRejected"))}
	bc := NewBookingConsumer(m, "", discardLogger())

	bc.handleMessage(context.Background(), delivery(t, ack, dto.BookingMessage{BookingID: "bk-1", Email: "jane@example.com"}))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Len(t, m.sent, 1)
}

func TestStart_StopsWhenChannelCloses(t *testing.T) {
	ack := &fakeAcknowledger{}
	m := &mockMailer{}
	bc := NewBookingConsumer(m, "", discardLogger())

	msgs := make(chan amqp.Delivery, 1)
	msgs <- delivery(t, ack, dto.BookingMessage{BookingID: "bk-1", Email: "jane@example.com"})
	close(msgs)

	<-bc.Start(context.Background(), msgs)

	assert.True(t, ack.acked)
	assert.Len(t, m.sent, 1)
}
