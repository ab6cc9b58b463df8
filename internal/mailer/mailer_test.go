package mailer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	input *ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSESMailer_Send(t *testing.T) {
	client := &mockSES{}
	m := newSESMailer(client, config.MailConfig{FromAddress: "no-reply@devevent.local", FromName: "DevEvent"}, discardLogger())

	err := m.Send(context.Background(), "jane@example.com", "Hello", "<p>Hi</p>", "")

	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, "DevEvent <no-reply@devevent.local>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"jane@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>Hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)
}

func TestSESMailer_SendError(t *testing.T) {
	client := &mockSES{err: errors.New("throttled")}
	m := newSESMailer(client, config.MailConfig{FromAddress: "no-reply@devevent.local"}, discardLogger())

	err := m.Send(context.Background(), "jane@example.com", "Hello", "", "Hi")

	assert.ErrorContains(t, err, "throttled")
	assert.Equal(t, "no-reply@devevent.local", aws.ToString(client.input.Source))
}

func TestSESMailer_RejectionIsPermanent(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"message rejected", &types.MessageRejected{Message: aws.String("Email address is not verified.")}, true},
		{"unverified mail from", &types.MailFromDomainNotVerifiedException{}, true},
		{"paused account", &types.AccountSendingPausedException{}, false},
		{"network", errors.New("dial tcp: i/o timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSESMailer(&mockSES{err: tt.err}, config.MailConfig{FromAddress: "no-reply@devevent.local"}, discardLogger())

			err := m.Send(context.Background(), "jane@example.com", "Hello", "", "Hi")

			require.Error(t, err)
			assert.Equal(t, tt.permanent, errors.Is(err, ErrRejected))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNew_FallsBackToNoop(t *testing.T) {
	m := New(config.MailConfig{Provider: "smtp"}, discardLogger())

	_, ok := m.(*noopMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), "jane@example.com", "s", "h", "t"))
}

func TestRender_BookingConfirmed(t *testing.T) {
	data := map[string]string{
		"Title":     "GopherCon <2026>",
		"Date":      "2026-08-25",
		"Time":      "09:00",
		"URL":       "https://devevent.local/events/gophercon-2026",
		"BookingID": "bk-1",
	}

	subject, html, text, err := Render("booking_confirmed", data)

	require.NoError(t, err)
	assert.Equal(t, "You're booked for GopherCon <2026>", subject)
	assert.Contains(t, html, "GopherCon &lt;2026&gt;")
	assert.Contains(t, text, "Booking reference: bk-1")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)

	assert.Error(t, err)
}
