package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"networkingbude/internal/domain"
)

const (
	sendTimeout = 15 * time.Second
	charset     = "UTF-8"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects how auto-fill reports leave the service.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sesAPI is the part of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer returns the report mailer for config.Provider. "ses" delivers
// through AWS SES. "log", "noop" and "" write the report to the log instead.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case "ses":
		if config.SES.Region == "" {
			return nil, fmt.Errorf("ses mailer: region is required")
		}
		if config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer: from address is required")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("SES TLS verification disabled, auto-fill reports go over an unverified connection")
		}
		return newSESMailer(newSESClient(config.SES), config, logger), nil
	case "log", "noop", "":
		return &logMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, auto-fill reports will only be logged", "provider", config.Provider)
		return &logMailer{logger: logger}, nil
	}
}

func newSESClient(cfg SESConfig) *ses.Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	return ses.NewFromConfig(aws.Config{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		HTTPClient:  httpClient,
	})
}

type sesMailer struct {
	client sesAPI
	source string
	logger *slog.Logger
}

func newSESMailer(client sesAPI, config MailerConfig, logger *slog.Logger) *sesMailer {
	source := config.FromAddress
	if config.FromName != "" {
		source = fmt.Sprintf("%s <%s>", config.FromName, config.FromAddress)
	}
	return &sesMailer{client: client, source: source, logger: logger}
}

func content(s string) *types.Content {
	if s == "" {
		return nil
	}
	return &types.Content{Data: aws.String(s), Charset: aws.String(charset)}
}

// Send delivers one report. Either body may be empty; SES gets only the parts present.
func (s *sesMailer) Send(to, subject, html, text string) error {
	input := &ses.SendEmailInput{
		Source:      aws.String(s.source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: content(subject),
			Body:    &types.Body{Html: content(html), Text: content(text)},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send auto-fill report to %s via SES: %w", to, err)
	}
	s.logger.Info("auto-fill report emailed", "to", to, "subject", subject, "message_id", aws.ToString(out.MessageId))
	return nil
}

// logMailer keeps the plain-text report in the log when no provider is set up.
type logMailer struct {
	logger *slog.Logger
}

func (l *logMailer) Send(to, subject, html, text string) error {
	l.logger.Info("auto-fill report not emailed, no provider configured", "to", to, "subject", subject, "report", text)
	return nil
}
