package adapter

import (
	"errors"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
)

// Adapters groups the outbound integrations handed to the service layer.
//
// Notifier delivers while the caller waits. MailQueue and Publisher hand the
// work to a background goroutine and are drained by Close.
type Adapters struct {
	Uploader  MediaUploader
	Notifier  Notifier
	MailQueue *MailQueue
	Publisher EventPublisher
}

// NewAdapters picks an implementation per integration from cfg. SendGrid
// wins over SMTP when both are configured; an integration without
// credentials gets its no-op variant.
func NewAdapters(cfg config.Adapter, logger *logger.Logger) *Adapters {
	adapters := &Adapters{}

	if cfg.Cloudinary.CloudName != "" {
		adapters.Uploader = NewCloudinaryUploader(cfg.Cloudinary, logger)
	} else {
		logger.Warn().Msg("media host is not configured, uploads will be rejected")
		adapters.Uploader = nopUploader{}
	}

	switch {
	case cfg.SendGrid.APIKey != "":
		adapters.Notifier = NewSendGridNotifier(cfg.SendGrid, logger)
	case cfg.SMTP.Host != "":
		adapters.Notifier = NewSMTPNotifier(cfg.SMTP, logger)
	default:
		logger.Warn().Msg("mail is not configured, notifications will be dropped")
		adapters.Notifier = nopNotifier{logger: logger}
	}

	adapters.MailQueue = NewMailQueue(adapters.Notifier, defaultQueueSize, logger)

	if len(cfg.Kafka.Brokers) > 0 {
		adapters.Publisher = NewPublishQueue(NewKafkaPublisher(cfg.Kafka, logger), defaultQueueSize, logger)
	} else {
		adapters.Publisher = nopPublisher{}
	}

	return adapters
}

// Close drains the background queues and releases the connections held by
// the adapters.
func (a *Adapters) Close() error {
	var errs []error
	if a.MailQueue != nil {
		errs = append(errs, a.MailQueue.Close())
	}
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	return errors.Join(errs...)
}
