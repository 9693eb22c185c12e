package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

type sendgridNotifier struct {
	apiKey string
	host   string
	from   *mail.Email

	logger *logger.Logger
}

// NewSendGridNotifier returns a [Notifier] backed by the SendGrid v3 mail
// API.
func NewSendGridNotifier(cfg config.SendGrid, logger *logger.Logger) Notifier {
	return &sendgridNotifier{
		apiKey: cfg.APIKey,
		host:   strings.TrimRight(cfg.BaseURL, "/"),
		from:   mail.NewEmail("", cfg.From),
		logger: logger,
	}
}

func (s *sendgridNotifier) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), "", body)

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sendgridNotifier.Send").Msg("sendgrid unreachable")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if resp.StatusCode >= 300 {
		logger.FromContext(ctx).Error().
			Str("func", "sendgridNotifier.Send").
			Int("status", resp.StatusCode).
			Str("body", resp.Body).
			Msg("sendgrid rejected message")
		return fmt.Errorf("%w: sendgrid status %d", ErrSendFailed, resp.StatusCode)
	}

	return nil
}
