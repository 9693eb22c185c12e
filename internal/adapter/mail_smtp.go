package adapter

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
)

const defaultSMTPPort = 587

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpNotifier struct {
	addr string
	auth smtp.Auth
	from string
	send sendMailFunc

	logger *logger.Logger
}

// NewSMTPNotifier returns a [Notifier] that delivers HTML mail over SMTP
// with PLAIN auth.
func NewSMTPNotifier(cfg config.SMTP, logger *logger.Logger) Notifier {
	port := cfg.Port
	if port == 0 {
		port = defaultSMTPPort
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &smtpNotifier{
		addr:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		auth:   auth,
		from:   from,
		send:   smtp.SendMail,
		logger: logger,
	}
}

func (s *smtpNotifier) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if err := s.send(s.addr, s.auth, s.from, []string{to}, buildMessage(s.from, to, subject, body)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "smtpNotifier.Send").Str("subject", subject).Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

// buildMessage renders an RFC 5322 message with an HTML body. Header values
// are stripped of line breaks.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
