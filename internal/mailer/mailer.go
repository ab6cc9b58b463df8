// Package mailer sends transactional email for booking confirmations.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdunnoorfaruki/devevent/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

// ErrRejected marks a send the provider refused for good; retrying the same
// message cannot succeed.
var ErrRejected = errors.New("mail rejected")

type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// sesAPI is the subset of *ses.Client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// New builds a mailer from cfg. Unknown providers fall back to the no-op
// mailer.
func New(cfg config.MailConfig, logger *slog.Logger) Mailer {
	switch cfg.Provider {
	case ProviderSES:
		awsCfg := aws.Config{
			Region: cfg.AWSRegion,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			),
		}
		return newSESMailer(ses.NewFromConfig(awsCfg), cfg, logger)
	case ProviderNoop:
		return &noopMailer{logger: logger}
	default:
		logger.Warn("unknown mail provider, using noop", "provider", cfg.Provider)
		return &noopMailer{logger: logger}
	}
}

type sesMailer struct {
	client      sesAPI
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func newSESMailer(client sesAPI, cfg config.MailConfig, logger *slog.Logger) *sesMailer {
	return &sesMailer{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		logger:      logger,
	}
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: utf8(subject),
			Body:    &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = utf8(html)
	}
	if text != "" {
		input.Message.Body.Text = utf8(text)
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		if permanent(err) {
			return fmt.Errorf("send email via ses: %w: %w", ErrRejected, err)
		}
		return fmt.Errorf("send email via ses: %w", err)
	}
	s.logger.Info("email sent", "provider", ProviderSES, "message_id", aws.ToString(out.MessageId))
	return nil
}

// permanent reports SES errors that depend on the message or the sender
// identity rather than on SES availability.
func permanent(err error) bool {
	var (
		rejected   *types.MessageRejected
		unverified *types.MailFromDomainNotVerifiedException
		noConfig   *types.ConfigurationSetDoesNotExistException
	)
	return errors.As(err, &rejected) || errors.As(err, &unverified) || errors.As(err, &noConfig)
}

func utf8(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	n.logger.Info("email skipped", "provider", ProviderNoop, "to", to, "subject", subject)
	return nil
}
