package service

import (
	"context"
	"fmt"
	"html"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

const contactSubject = "Customer General Inquiry"

// contactService forwards the general contact form to the shop mailbox.
// Unlike enquiry receipts the mail is the whole request, so a delivery
// failure is returned.
type contactService struct {
	notifier  adapter.Notifier
	adminMail string
	validator validators.Validator

	logger *logger.Logger
}

func NewContactService(notifier adapter.Notifier, adminMail string, validator validators.Validator, logger *logger.Logger) ContactService {
	return &contactService{notifier: notifier, adminMail: adminMail, validator: validator, logger: logger}
}

func (c *contactService) SendContact(ctx context.Context, req models.ContactRequest) error {
	req.Normalize()
	if err := c.validator.Validate(ctx, req); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong><br/>%s</p><p><strong>Phone:</strong> %s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Message),
		html.EscapeString(req.Phone),
	)

	if err := c.notifier.Send(ctx, c.adminMail, contactSubject, body); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "contactService.SendContact").Msg("contact mail was not sent")
		return fmt.Errorf("contact mail: %w", err)
	}
	return nil
}
